package workflow

import "testing"

func TestParserParseValid(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": "n1", "type": "text", "config": {"value": {"value": "hello"}}},
			{"id": "n2", "type": "vfs_save", "config": {"file_path": {"value": "/tmp/out.txt"}}}
		],
		"connections": [
			{"from": {"nodeId": "n1", "portName": "text"}, "to": {"nodeId": "n2", "portName": "data"}}
		]
	}`)

	wf, err := NewParser().Parse(payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(wf.Nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(wf.Nodes))
	}
	if len(wf.Connections) != 1 {
		t.Errorf("expected 1 connection, got %d", len(wf.Connections))
	}
}

func TestParserRejectsEmptyWorkflow(t *testing.T) {
	_, err := NewParser().Parse([]byte(`{"nodes": [], "connections": []}`))
	if err == nil {
		t.Fatal("expected error for empty workflow")
	}
}

func TestParserRejectsDuplicateNodeID(t *testing.T) {
	payload := []byte(`{"nodes": [
		{"id": "n1", "type": "text"},
		{"id": "n1", "type": "math"}
	]}`)
	if _, err := NewParser().Parse(payload); err == nil {
		t.Fatal("expected error for duplicate node id")
	}
}

func TestParserRejectsDanglingConnection(t *testing.T) {
	payload := []byte(`{
		"nodes": [{"id": "n1", "type": "text"}],
		"connections": [{"from": {"nodeId": "n1", "portName": "text"}, "to": {"nodeId": "missing", "portName": "data"}}]
	}`)
	if _, err := NewParser().Parse(payload); err == nil {
		t.Fatal("expected error for dangling connection target")
	}
}

func TestNodeConfigAccessors(t *testing.T) {
	n := Node{
		ID:   "n1",
		Type: "math",
		Config: map[string]ConfigParam{
			"op":             {Value: "add"},
			"decimal_places": {Value: float64(2)},
			"case_sensitive": {Value: true},
		},
	}

	if got := n.ConfigString("op", ""); got != "add" {
		t.Errorf("ConfigString(op) = %q", got)
	}
	if got := n.ConfigInt("decimal_places", -1); got != 2 {
		t.Errorf("ConfigInt(decimal_places) = %d", got)
	}
	if got := n.ConfigBool("case_sensitive", false); !got {
		t.Error("ConfigBool(case_sensitive) = false, want true")
	}
	if got := n.ConfigString("missing", "fallback"); got != "fallback" {
		t.Errorf("ConfigString(missing) = %q, want fallback", got)
	}
}

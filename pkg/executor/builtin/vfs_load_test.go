package builtin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func newVFSLoadNode(config map[string]any) *workflow.Node {
	params := make(map[string]workflow.ConfigParam, len(config))
	for k, v := range config {
		params[k] = workflow.ConfigParam{Value: v}
	}
	return &workflow.Node{ID: "n1", Type: "vfs_load", Config: params}
}

func TestVFSLoadExecutor_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":"{\"greeting\":\"hi\"}"}`))
	}))
	defer srv.Close()

	e := &VFSLoadExecutor{VFS: vfsclient.New(srv.URL, "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/docs/a.json", "format": "json"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, ok := result["json"].(map[string]any)
	if !ok || parsed["greeting"] != "hi" {
		t.Errorf("json = %v", result["json"])
	}
}

func TestVFSLoadExecutor_JSONParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"not json"}`))
	}))
	defer srv.Close()

	e := &VFSLoadExecutor{VFS: vfsclient.New(srv.URL, "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/docs/a.json", "format": "json"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}

func TestVFSLoadExecutor_Text(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"hello world"}`))
	}))
	defer srv.Close()

	e := &VFSLoadExecutor{VFS: vfsclient.New(srv.URL, "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/docs/a.txt", "format": "text"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["text"] != "hello world" {
		t.Errorf("text = %v, want \"hello world\"", result["text"])
	}
}

func TestVFSLoadExecutor_Binary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x01, 0x02, 0x03})
	}))
	defer srv.Close()

	e := &VFSLoadExecutor{VFS: vfsclient.New(srv.URL, "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/docs/a.bin", "format": "binary"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := result["binary"].([]byte)
	if !ok || len(data) != 3 {
		t.Errorf("binary = %v", result["binary"])
	}
}

func TestVFSLoadExecutor_UnknownFormat(t *testing.T) {
	e := &VFSLoadExecutor{VFS: vfsclient.New("http://example.invalid", "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/docs/a.txt", "format": "xml"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}

func TestVFSLoadExecutor_ReadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := &VFSLoadExecutor{VFS: vfsclient.New(srv.URL, "tok", nil)}
	node := newVFSLoadNode(map[string]any{"file_path": "/missing.txt", "format": "text"})

	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}

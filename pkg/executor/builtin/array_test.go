package builtin

import (
	"context"
	"testing"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func newArrayNode(operation string, extra map[string]any) *workflow.Node {
	config := map[string]workflow.ConfigParam{
		"operation": {Value: operation},
	}
	for k, v := range extra {
		config[k] = workflow.ConfigParam{Value: v}
	}
	return &workflow.Node{ID: "n1", Type: "array", Config: config}
}

func TestArrayExecutor_Length(t *testing.T) {
	e := &ArrayExecutor{}
	node := newArrayNode("length", nil)
	result, err := e.Execute(context.Background(), node, executor.InputData{"array": []any{1.0, 2.0, 3.0}}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["result"] != 3 {
		t.Errorf("got %v", result["result"])
	}
}

func TestArrayExecutor_FilterGreaterThan(t *testing.T) {
	e := &ArrayExecutor{}
	node := newArrayNode("filter", map[string]any{"filter_value": "2", "filter_operator": "greater_than"})
	result, err := e.Execute(context.Background(), node, executor.InputData{"array": []any{1.0, 2.0, 3.0}}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := result["result"].([]any)
	if !ok || len(arr) != 1 || arr[0] != 3.0 {
		t.Errorf("got %v", result["result"])
	}
}

func TestArrayExecutor_ReverseAndSlice(t *testing.T) {
	e := &ArrayExecutor{}
	node := newArrayNode("reverse", nil)
	result, err := e.Execute(context.Background(), node, executor.InputData{"array": []any{1.0, 2.0, 3.0}}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := result["result"].([]any)
	if arr[0] != 3.0 || arr[2] != 1.0 {
		t.Errorf("got %v", arr)
	}
}

func TestArrayExecutor_NotAnArray(t *testing.T) {
	e := &ArrayExecutor{}
	node := newArrayNode("length", nil)
	result, err := e.Execute(context.Background(), node, executor.InputData{"array": "not an array"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["error"] == nil {
		t.Error("expected error for non-array input")
	}
}

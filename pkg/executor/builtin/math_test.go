package builtin

import (
	"context"
	"testing"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func newMathNode(operation string, valueA, valueB float64, decimalPlaces int) *workflow.Node {
	return &workflow.Node{
		ID:   "n1",
		Type: "math",
		Config: map[string]workflow.ConfigParam{
			"operation":      {Value: operation},
			"value_a":        {Value: valueA},
			"value_b":        {Value: valueB},
			"decimal_places": {Value: float64(decimalPlaces)},
		},
	}
}

func TestMathExecutor_Operations(t *testing.T) {
	e := &MathExecutor{}
	tests := []struct {
		operation string
		a, b      float64
		want      float64
	}{
		{"add", 2, 3, 5},
		{"subtract", 5, 3, 2},
		{"multiply", 4, 3, 12},
		{"divide", 10, 4, 2.5},
		{"modulo", 10, 3, 1},
		{"power", 2, 3, 8},
		{"min", 2, 3, 2},
		{"max", 2, 3, 3},
		{"abs", -5, 0, 5},
		{"round", 2.6, 0, 3},
		{"floor", 2.9, 0, 2},
		{"ceil", 2.1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			node := newMathNode(tt.operation, tt.a, tt.b, 2)
			result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result["result"] != tt.want {
				t.Errorf("got %v, want %v", result["result"], tt.want)
			}
		})
	}
}

func TestMathExecutor_DivisionByZero(t *testing.T) {
	e := &MathExecutor{}
	node := newMathNode("divide", 1, 0, 2)
	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["error"] == nil {
		t.Error("expected division by zero error")
	}
}

func TestMathExecutor_ModuloByZero(t *testing.T) {
	e := &MathExecutor{}
	node := newMathNode("modulo", 1, 0, 2)
	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["error"] == nil {
		t.Error("expected modulo by zero error")
	}
}

func TestMathExecutor_InputOverridesConfig(t *testing.T) {
	e := &MathExecutor{}
	node := newMathNode("add", 100, 100, 0)
	result, err := e.Execute(context.Background(), node, executor.InputData{
		"value_a": 1.0,
		"value_b": 2.0,
	}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["result"] != float64(3) {
		t.Errorf("expected wired inputs to override config, got %v", result["result"])
	}
}

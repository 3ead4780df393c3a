package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func newTimerNode(config map[string]any) *workflow.Node {
	params := make(map[string]workflow.ConfigParam, len(config))
	for k, v := range config {
		params[k] = workflow.ConfigParam{Value: v}
	}
	return &workflow.Node{ID: "n1", Type: "timer", Config: params}
}

func TestTimerExecutor_Fires(t *testing.T) {
	e := &TimerExecutor{}
	node := newTimerNode(map[string]any{"interval": 5})

	start := time.Now()
	result, err := e.Execute(context.Background(), node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Errorf("Execute returned before the configured interval elapsed")
	}
	if result["elapsed"] != 5 {
		t.Errorf("elapsed = %v, want 5", result["elapsed"])
	}
	if _, ok := result["trigger"].(int64); !ok {
		t.Errorf("trigger = %v (%T), want int64 unix timestamp", result["trigger"], result["trigger"])
	}
}

func TestTimerExecutor_CancelledContext(t *testing.T) {
	e := &TimerExecutor{}
	node := newTimerNode(map[string]any{"interval": 1000})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Execute(ctx, node, executor.InputData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result for cancelled context, got %v", result)
	}
}

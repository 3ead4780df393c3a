package builtin

import (
	"context"
	"time"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// DelayExecutor waits a configured number of milliseconds, then passes its
// input straight through (spec §4.6 "delay").
type DelayExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *DelayExecutor) NodeType() string { return "delay" }

// Execute implements executor.NodeExecutor.
func (e *DelayExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	delayMs := node.ConfigInt("delay_ms", 1000)

	passthrough, _ := datautil.ResolvePort(input, "data")

	if err := sleepCancellable(ctx, time.Duration(delayMs)*time.Millisecond); err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	return workflow.Result{
		"data":           passthrough,
		"original_data":  passthrough,
		"processed_data": passthrough,
		"delay_ms":       delayMs,
		"timestamp":      time.Now().UnixMilli(),
	}, nil
}

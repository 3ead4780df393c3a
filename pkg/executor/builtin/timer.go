package builtin

import (
	"context"
	"time"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// TimerExecutor sleeps for a configured interval then fires a trigger
// (spec §4.6 "timer"). It is re-armed on every re-execution inside a
// for_each iteration or repeater cycle.
type TimerExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *TimerExecutor) NodeType() string { return "timer" }

// Execute implements executor.NodeExecutor.
func (e *TimerExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	intervalMs := node.ConfigInt("interval", 0)

	if err := sleepCancellable(ctx, time.Duration(intervalMs)*time.Millisecond); err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	return workflow.Result{
		"trigger": time.Now().Unix(),
		"elapsed": intervalMs,
	}, nil
}

// sleepCancellable blocks for d or returns ctx.Err() if the context is
// cancelled first (spec §5: "all suspensions must be cancellable").
func sleepCancellable(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package builtin

import (
	"context"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// LogicalGateExecutor derives a boolean condition from its input and either
// lets execution continue downstream or signals a stop (spec §4.5.7, §4.6
// "logical_gate").
type LogicalGateExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *LogicalGateExecutor) NodeType() string { return "logical_gate" }

// Execute implements executor.NodeExecutor.
func (e *LogicalGateExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	invert := node.ConfigBool("invert", false)

	var condition bool
	if v, ok := input["condition"]; ok {
		condition = truthy(v)
	} else if v, ok := input["value"]; ok {
		condition = truthy(v)
	} else {
		condition = false
		for _, field := range []string{"result", "data", "response", "text"} {
			if v, ok := input[field]; ok && v != nil {
				condition = truthy(v)
				break
			}
		}
		if !condition {
			for _, v := range input {
				if v != nil {
					condition = true
					break
				}
			}
		}
	}

	if invert {
		condition = !condition
	}

	if condition {
		var trigger any = true
		if len(input) > 0 {
			trigger = map[string]any(input)
		}
		return workflow.Result{"trigger": trigger}, nil
	}

	return workflow.Result{"__stop_execution": true}, nil
}

package builtin

import (
	"context"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// UnknownExecutor is the fallback dispatched when a workflow references a
// node type with no registered executor. It synthesises plausible output
// values from the node's definition so downstream nodes still receive
// something shaped like what they expect (spec §4.4).
type UnknownExecutor struct{}

// NodeType implements executor.NodeExecutor. It is never looked up by this
// value — the registry dispatches to it via SetUnknownExecutor instead.
func (e *UnknownExecutor) NodeType() string { return "unknown" }

// Execute implements executor.NodeExecutor.
func (e *UnknownExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	def := workflow.DefaultNodeDefinition(node.Type)

	result := workflow.Result{}
	for _, output := range def.Outputs {
		result[output.ID] = defaultValueForPortType(node.Type, output.Type)
	}

	if len(input) > 0 {
		result["input_data"] = map[string]any(input)
	}
	result["node_type"] = node.Type
	result["node_id"] = node.ID
	result["processed"] = true

	return result, nil
}

func defaultValueForPortType(nodeType, portType string) any {
	switch portType {
	case "text":
		return "Processed " + nodeType + " output"
	case "json":
		return map[string]any{"node_type": nodeType, "processed": true}
	case "number":
		return 1
	case "boolean":
		return true
	case "binary":
		return []byte("default_binary_data")
	default:
		return "Default " + nodeType + " data"
	}
}

package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// NodeReferenceExecutor reaches across the already-computed result set to
// pull a specific output port from an arbitrary earlier node, independent of
// the graph's wired connections (spec §4.6 "node_reference").
type NodeReferenceExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *NodeReferenceExecutor) NodeType() string { return "node_reference" }

// Execute implements executor.NodeExecutor.
func (e *NodeReferenceExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	sourceNodeID := node.ConfigString("source_node_id", "")
	outputPortID := node.ConfigString("output_port_id", "")
	fallbackValue := node.ConfigString("fallback_value", "")

	if sourceNodeID == "" {
		return nodeReferenceFallback(fallbackValue, "No source node selected"), nil
	}
	if outputPortID == "" {
		return nodeReferenceFallback(fallbackValue, "No output port selected"), nil
	}

	sourceResult, ok := allResults[sourceNodeID]
	if !ok {
		return nodeReferenceFallback(fallbackValue, fmt.Sprintf("No data found for node %s", sourceNodeID)), nil
	}

	var referenced any
	if v, ok := sourceResult[outputPortID]; ok {
		referenced = v
	} else if len(sourceResult) == 1 {
		for _, v := range sourceResult {
			referenced = v
		}
	} else {
		referenced = sourceResult
	}

	if referenced == nil {
		return nodeReferenceFallback(fallbackValue, fmt.Sprintf("No data found for node %s, port %s", sourceNodeID, outputPortID)), nil
	}

	return formatNodeReferenceOutput(referenced), nil
}

func nodeReferenceFallback(fallbackValue, errMsg string) workflow.Result {
	var fallback any
	if fallbackValue != "" {
		fallback = fallbackValue
	}
	return workflow.Result{
		"data":     fallback,
		"text":     fmt.Sprintf("%v", stringOrEmpty(fallback)),
		"json":     fallback,
		"number":   asFloat(fallback),
		"boolean":  fallback != nil && fallback != "",
		"binary":   nil,
		"original": fallback,
		"error":    errMsg,
	}
}

func stringOrEmpty(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func formatNodeReferenceOutput(referenced any) workflow.Result {
	textValue := fmt.Sprintf("%v", referenced)
	var jsonValue any = referenced
	numberValue := asFloat(referenced)
	booleanValue := truthy(referenced)
	var binaryValue any

	switch v := referenced.(type) {
	case []byte:
		binaryValue = v
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			jsonValue = parsed
		}
	case map[string]any, []any:
		jsonValue = v
	}

	return workflow.Result{
		"data":     referenced,
		"text":     textValue,
		"json":     jsonValue,
		"number":   numberValue,
		"boolean":  booleanValue,
		"binary":   binaryValue,
		"original": referenced,
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

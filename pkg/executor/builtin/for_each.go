package builtin

import (
	"context"
	"reflect"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// ForEachExecutor doesn't iterate itself — it returns a loop-control marker
// that the Execution Manager interprets to drive downstream re-execution
// per item (spec §4.5.5, §4.6 "for_each").
type ForEachExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *ForEachExecutor) NodeType() string { return "for_each" }

// Execute implements executor.NodeExecutor.
func (e *ForEachExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	stopOnError := node.ConfigBool("stop_on_error", true)
	iterationDelay := node.ConfigInt("iteration_delay", 0)

	var arrayData []any
	for _, port := range []string{"array", "data", "file_names", "items"} {
		if v, ok := input[port]; ok {
			if arr, ok := toAnySlice(v); ok {
				arrayData = arr
				break
			}
		}
	}

	if arrayData == nil {
		return workflow.Result{"error": "for_each node requires an array input"}, nil
	}

	return workflow.Result{
		"for_each_control": true,
		"array_data":       arrayData,
		"stop_on_error":    stopOnError,
		"iteration_delay":  iterationDelay,
		"node_id":          node.ID,
		"total_items":      len(arrayData),
	}, nil
}

// toAnySlice accepts []any directly and boxes any other native slice/array
// type (e.g. the []string vfs_directory_list produces) element by element,
// so for_each isn't tied to one producer's concrete output type.
func toAnySlice(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

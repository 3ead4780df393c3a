package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// ArrayExecutor performs bulk operations over an array input (spec §4.6
// "array").
type ArrayExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *ArrayExecutor) NodeType() string { return "array" }

// Execute implements executor.NodeExecutor.
func (e *ArrayExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	operation := node.ConfigString("operation", "map")
	fieldPath := node.ConfigString("field_path", "")
	filterValue := node.ConfigString("filter_value", "")
	filterOperator := node.ConfigString("filter_operator", "equals")
	joinSeparator := node.ConfigString("join_separator", ", ")
	sliceStart := node.ConfigInt("slice_start", 0)
	sliceEnd := node.ConfigInt("slice_end", 0)

	var array []any
	if v, ok := input["array"]; ok {
		array, ok = v.([]any)
		if !ok {
			return workflow.Result{"error": "Input is not an array"}, nil
		}
	} else if v, ok := input["data"]; ok {
		if arr, ok := v.([]any); ok {
			array = arr
		} else if s, ok := v.(string); ok {
			if err := json.Unmarshal([]byte(s), &array); err != nil {
				return workflow.Result{"error": "Invalid array data"}, nil
			}
		} else {
			return workflow.Result{"error": "Input is not an array"}, nil
		}
	} else {
		return workflow.Result{"error": "Input is not an array"}, nil
	}

	var first, last any
	if len(array) > 0 {
		first = array[0]
		last = array[len(array)-1]
	}

	var result any
	switch operation {
	case "map":
		if fieldPath != "" {
			mapped := make([]any, len(array))
			for i, item := range array {
				mapped[i] = datautil.Extract(item, fieldPath)
			}
			result = mapped
		} else {
			result = array
		}
	case "filter":
		filtered := make([]any, 0, len(array))
		for _, item := range array {
			value := item
			if fieldPath != "" {
				value = datautil.Extract(item, fieldPath)
			}
			if matchesFilter(value, filterValue, filterOperator) {
				filtered = append(filtered, item)
			}
		}
		result = filtered
	case "length":
		result = len(array)
	case "join":
		items := make([]string, len(array))
		for i, item := range array {
			if fieldPath != "" {
				items[i] = fmt.Sprintf("%v", datautil.Extract(item, fieldPath))
			} else if m, ok := item.(map[string]any); ok {
				b, _ := json.Marshal(m)
				items[i] = string(b)
			} else {
				items[i] = fmt.Sprintf("%v", item)
			}
		}
		result = strings.Join(items, joinSeparator)
	case "first":
		result = first
	case "last":
		result = last
	case "slice":
		end := sliceEnd
		if end <= 0 || end > len(array) {
			end = len(array)
		}
		start := sliceStart
		if start < 0 {
			start = 0
		}
		if start > end {
			start = end
		}
		result = array[start:end]
	case "reverse":
		reversed := make([]any, len(array))
		for i, item := range array {
			reversed[len(array)-1-i] = item
		}
		result = reversed
	case "sort":
		sorted := make([]any, len(array))
		copy(sorted, array)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if fieldPath != "" {
				a, b = datautil.Extract(sorted[i], fieldPath), datautil.Extract(sorted[j], fieldPath)
			}
			return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
		})
		result = sorted
	case "unique":
		seen := map[string]bool{}
		unique := make([]any, 0, len(array))
		for _, item := range array {
			key := item
			if fieldPath != "" {
				key = datautil.Extract(item, fieldPath)
			}
			k := fmt.Sprintf("%v", key)
			if !seen[k] {
				seen[k] = true
				unique = append(unique, item)
			}
		}
		result = unique
	default:
		result = array
	}

	resultArray, isArray := result.([]any)
	length := len(array)
	textValue := fmt.Sprintf("%v", result)
	if isArray {
		length = len(resultArray)
		if b, err := json.Marshal(resultArray); err == nil {
			textValue = string(b)
		}
	}

	return workflow.Result{
		"result": result,
		"data":   result,
		"text":   textValue,
		"length": length,
		"first":  first,
		"last":   last,
	}, nil
}

func matchesFilter(value any, filterValue, operator string) bool {
	valueStr := strings.ToLower(fmt.Sprintf("%v", value))
	filterStr := strings.ToLower(filterValue)

	switch operator {
	case "equals":
		return fmt.Sprintf("%v", value) == filterValue
	case "not_equals":
		return fmt.Sprintf("%v", value) != filterValue
	case "contains":
		return strings.Contains(valueStr, filterStr)
	case "greater_than":
		return asFloat(value) > asFloat(filterValue)
	case "less_than":
		return asFloat(value) < asFloat(filterValue)
	case "starts_with":
		return strings.HasPrefix(valueStr, filterStr)
	case "ends_with":
		return strings.HasSuffix(valueStr, filterStr)
	default:
		return true
	}
}

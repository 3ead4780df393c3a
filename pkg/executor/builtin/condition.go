package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// ConditionExecutor compares an input value against a configured operand
// using one of a fixed set of operators (spec §4.6 "condition").
type ConditionExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *ConditionExecutor) NodeType() string { return "condition" }

// Execute implements executor.NodeExecutor.
func (e *ConditionExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	operator := node.ConfigString("operator", "equals")
	compareValue := node.ConfigString("compare_value", "")
	caseSensitive := node.ConfigBool("case_sensitive", true)

	var value any
	if v, ok := input["value"]; ok {
		value = v
	} else {
		for _, field := range []string{"extracted_value", "data", "response", "text"} {
			if v, ok := input[field]; ok && v != nil {
				value = v
				break
			}
		}
	}

	var result bool
	switch operator {
	case "is_empty":
		result = value == nil || strings.TrimSpace(fmt.Sprintf("%v", value)) == ""
	case "is_not_empty":
		result = value != nil && strings.TrimSpace(fmt.Sprintf("%v", value)) != ""
	case "not_contains":
		result = !conditionStringCmp(value, compareValue, caseSensitive, strings.Contains)
	case "equals", "not_equals", "greater_than", "less_than", "greater_than_or_equal", "less_than_or_equal":
		result = compareOrdered(value, compareValue, operator, caseSensitive)
	case "contains":
		result = conditionStringCmp(value, compareValue, caseSensitive, strings.Contains)
	case "starts_with":
		result = conditionStringCmp(value, compareValue, caseSensitive, strings.HasPrefix)
	case "ends_with":
		result = conditionStringCmp(value, compareValue, caseSensitive, strings.HasSuffix)
	default:
		result = false
	}

	return workflow.Result{"result": result, "value": value, "compare_value": compareValue}, nil
}

func conditionStringCmp(value any, compareValue string, caseSensitive bool, cmp func(s, substr string) bool) bool {
	valueStr := fmt.Sprintf("%v", value)
	if !caseSensitive {
		valueStr = strings.ToLower(valueStr)
		compareValue = strings.ToLower(compareValue)
	}
	return cmp(valueStr, compareValue)
}

func compareOrdered(value any, compareValue, operator string, caseSensitive bool) bool {
	if b, ok := value.(bool); ok || isBoolString(compareValue) {
		valueBool := b
		if !ok {
			valueBool = strings.EqualFold(fmt.Sprintf("%v", value), "true")
		}
		compareBool := strings.EqualFold(compareValue, "true")
		switch operator {
		case "equals":
			return valueBool == compareBool
		case "not_equals":
			return valueBool != compareBool
		}
	}

	valueNum, valueErr := strconv.ParseFloat(fmt.Sprintf("%v", value), 64)
	compareNum, compareErr := strconv.ParseFloat(compareValue, 64)
	if valueErr == nil && compareErr == nil {
		switch operator {
		case "equals":
			return valueNum == compareNum
		case "not_equals":
			return valueNum != compareNum
		case "greater_than":
			return valueNum > compareNum
		case "less_than":
			return valueNum < compareNum
		case "greater_than_or_equal":
			return valueNum >= compareNum
		case "less_than_or_equal":
			return valueNum <= compareNum
		}
	}

	valueStr := fmt.Sprintf("%v", value)
	if !caseSensitive {
		valueStr = strings.ToLower(valueStr)
		compareValue = strings.ToLower(compareValue)
	}
	switch operator {
	case "equals":
		return valueStr == compareValue
	case "not_equals":
		return valueStr != compareValue
	default:
		return false
	}
}

func isBoolString(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

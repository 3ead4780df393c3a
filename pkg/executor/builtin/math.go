package builtin

import (
	"context"
	"fmt"
	"math"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// MathExecutor performs a single arithmetic operation over two operands,
// each sourced from config or overridden by a wired input port (spec §4.6
// "math").
type MathExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *MathExecutor) NodeType() string { return "math" }

// Execute implements executor.NodeExecutor.
func (e *MathExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	operation := node.ConfigString("operation", "add")
	decimalPlaces := node.ConfigInt("decimal_places", 0)

	valueA := node.ConfigFloat("value_a", 0)
	valueB := node.ConfigFloat("value_b", 0)

	if v, ok := extractMathOperand(input, []string{"value_a", "number_a", "data"}); ok {
		valueA = v
	}
	if v, ok := extractMathOperand(input, []string{"value_b", "number_b"}); ok {
		valueB = v
	}

	var result float64
	switch operation {
	case "add":
		result = valueA + valueB
	case "subtract":
		result = valueA - valueB
	case "multiply":
		result = valueA * valueB
	case "divide":
		if valueB == 0 {
			return workflow.Result{"error": "Division by zero"}, nil
		}
		result = valueA / valueB
	case "modulo":
		if valueB == 0 {
			return workflow.Result{"error": "Modulo by zero"}, nil
		}
		result = math.Mod(valueA, valueB)
	case "power":
		result = math.Pow(valueA, valueB)
	case "min":
		result = math.Min(valueA, valueB)
	case "max":
		result = math.Max(valueA, valueB)
	case "abs":
		result = math.Abs(valueA)
	case "round":
		result = math.Round(valueA)
	case "floor":
		result = math.Floor(valueA)
	case "ceil":
		result = math.Ceil(valueA)
	default:
		result = valueA
	}

	if decimalPlaces >= 0 {
		scale := math.Pow(10, float64(decimalPlaces))
		result = math.Round(result*scale) / scale
	}

	var formatted string
	if decimalPlaces <= 0 {
		formatted = fmt.Sprintf("%d", int64(result))
	} else {
		formatted = fmt.Sprintf("%.*f", decimalPlaces, result)
	}

	return workflow.Result{
		"result":    result,
		"data":      result,
		"text":      formatted,
		"formatted": formatted,
	}, nil
}

func extractMathOperand(input executor.InputData, portNames []string) (float64, bool) {
	for _, port := range portNames {
		portData, ok := input[port]
		if !ok {
			continue
		}
		if nested, ok := portData.(map[string]any); ok {
			inner := nested
			if innerData, ok := nested["input_data"].(map[string]any); ok {
				inner = innerData
			}
			for _, field := range []string{"result", "data", "value", "number"} {
				if v, ok := inner[field]; ok {
					if f, ok := toFloatStrict(v); ok {
						return f, true
					}
				}
			}
			continue
		}
		if f, ok := toFloatStrict(portData); ok {
			return f, true
		}
	}
	return 0, false
}

func toFloatStrict(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		return parseFloatOK(t)
	default:
		return 0, false
	}
}

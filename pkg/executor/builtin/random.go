package builtin

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// RandomExecutor generates a random number within a configured range (spec
// §4.6 "random"). It uses crypto/rand rather than math/rand since a workflow
// author has no way to seed it and shouldn't be able to predict its output.
type RandomExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *RandomExecutor) NodeType() string { return "random" }

// Execute implements executor.NodeExecutor.
func (e *RandomExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	minValue := node.ConfigFloat("min_value", 0)
	maxValue := node.ConfigFloat("max_value", 1)
	decimalPlaces := node.ConfigInt("decimal_places", 0)
	outputType := node.ConfigString("output_type", "float")

	if minValue >= maxValue {
		return workflow.Result{
			"number":  0,
			"text":    "0",
			"data":    "0",
			"integer": 0,
			"float":   0.0,
			"error":   "Invalid range: minimum must be less than maximum",
		}, nil
	}

	value := minValue + randomUnit()*(maxValue-minValue)

	if outputType == "integer" || decimalPlaces == 0 {
		value = math.Round(value)
	} else {
		scale := math.Pow(10, float64(decimalPlaces))
		value = math.Round(value*scale) / scale
	}

	return workflow.Result{
		"number":  value,
		"text":    fmt.Sprintf("%v", value),
		"data":    fmt.Sprintf("%v", value),
		"integer": int(math.Round(value)),
		"float":   value,
	}, nil
}

// randomUnit returns a uniform float64 in [0, 1).
func randomUnit() float64 {
	const precision = 1 << 53
	n, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return 0
	}
	return float64(n.Int64()) / float64(precision)
}

package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// JSONExtractExecutor extracts a nested value from a JSON-shaped input via
// a dotted path (spec §4.6 "json_extract").
type JSONExtractExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *JSONExtractExecutor) NodeType() string { return "json_extract" }

// Execute implements executor.NodeExecutor.
func (e *JSONExtractExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	fieldPath := node.ConfigString("field_path", "")
	displayFormat := node.ConfigString("display_format", "json")

	var source any
	for _, port := range []string{"json", "parsed_json", "text", "data"} {
		if v, ok := input[port]; ok && v != nil {
			source = v
			break
		}
	}

	if s, ok := source.(string); ok {
		if strings.HasPrefix(s, "/") {
			return workflow.Result{"error": fmt.Sprintf("json_extract received a filesystem path (%q) instead of JSON data; check upstream wiring", s)}, nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return workflow.Result{"error": fmt.Sprintf("failed to parse JSON: %v", err)}, nil
		}
		source = parsed
	}

	extracted := datautil.Extract(source, fieldPath)

	result := workflow.Result{
		"json":           extracted,
		"extracted_value": extracted,
	}
	if displayFormat == "text" {
		result["text"] = fmt.Sprintf("%v", extracted)
	} else {
		result["text"] = extracted
	}
	return result, nil
}

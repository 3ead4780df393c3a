package builtin

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// StringExecutor performs string transformations on a single text input
// (spec §4.6 "string").
type StringExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *StringExecutor) NodeType() string { return "string" }

// Execute implements executor.NodeExecutor.
func (e *StringExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	operation := node.ConfigString("operation", "concatenate")
	caseSensitive := node.ConfigBool("case_sensitive", true)

	raw, _ := datautil.ResolvePort(input, "text")
	text := fmt.Sprintf("%v", raw)

	var array []any
	var resultValue any = text

	switch operation {
	case "concatenate":
		suffix := node.ConfigString("value", "")
		resultValue = text + suffix
	case "split":
		sep := node.ConfigString("value", ",")
		parts := strings.Split(text, sep)
		array = make([]any, len(parts))
		for i, p := range parts {
			array[i] = p
		}
		resultValue = array
	case "replace":
		search := node.ConfigString("search", "")
		replace := node.ConfigString("value", "")
		if caseSensitive {
			resultValue = strings.ReplaceAll(text, search, replace)
		} else {
			re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
			resultValue = re.ReplaceAllString(text, replace)
		}
	case "trim":
		resultValue = strings.TrimSpace(text)
	case "uppercase":
		resultValue = strings.ToUpper(text)
	case "lowercase":
		resultValue = strings.ToLower(text)
	case "substring":
		start := node.ConfigInt("start", 0)
		length := node.ConfigInt("length", len(text))
		resultValue = substring(text, start, length)
	case "regex_match":
		pattern := node.ConfigString("value", "")
		re, err := compileRegex(pattern, caseSensitive)
		if err != nil {
			return workflow.Result{"error": fmt.Sprintf("invalid regex: %v", err)}, nil
		}
		resultValue = re.FindString(text)
	case "regex_replace":
		pattern := node.ConfigString("search", "")
		replace := node.ConfigString("value", "")
		re, err := compileRegex(pattern, caseSensitive)
		if err != nil {
			return workflow.Result{"error": fmt.Sprintf("invalid regex: %v", err)}, nil
		}
		resultValue = re.ReplaceAllString(text, replace)
	case "starts_with":
		target := node.ConfigString("value", "")
		resultValue = compareStrings(text, target, caseSensitive, strings.HasPrefix)
	case "ends_with":
		target := node.ConfigString("value", "")
		resultValue = compareStrings(text, target, caseSensitive, strings.HasSuffix)
	case "contains":
		target := node.ConfigString("value", "")
		resultValue = compareStrings(text, target, caseSensitive, strings.Contains)
	case "repeat":
		count := node.ConfigInt("count", 1)
		if count < 0 {
			count = 0
		}
		resultValue = strings.Repeat(text, count)
	case "last_line":
		lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
		resultValue = lines[len(lines)-1]
	default:
		return workflow.Result{"error": fmt.Sprintf("unknown string operation: %s", operation)}, nil
	}

	result := workflow.Result{
		"result":     resultValue,
		"data":       resultValue,
		"length":     len(text),
		"word_count": len(strings.Fields(text)),
	}
	if array != nil {
		result["array"] = array
	}
	return result, nil
}

func substring(text string, start, length int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		return ""
	}
	end := start + length
	if length < 0 || end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

func compareStrings(text, target string, caseSensitive bool, cmp func(s, substr string) bool) bool {
	if !caseSensitive {
		text = strings.ToLower(text)
		target = strings.ToLower(target)
	}
	return cmp(text, target)
}

func compileRegex(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

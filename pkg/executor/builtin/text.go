package builtin

import (
	"context"
	"time"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// TextExecutor emits a configured, template-substituted literal string
// (spec §4.6 "text").
type TextExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *TextExecutor) NodeType() string { return "text" }

// Execute implements executor.NodeExecutor.
func (e *TextExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	text := datautil.ApplyTemplates(node.ConfigString("text_content", ""), input, time.Now())
	return workflow.Result{"text": text, "data": text}, nil
}

package builtin

import (
	"context"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// RepeaterExecutor backs the "repeater" node type. A repeater node is
// excluded from normal dispatch by the Execution Manager (spec §4.5.1,
// §4.5.6) — the manager reads its interval/count configuration directly and
// drives the surrounding loop itself. This executor only exists so the node
// type has a registry entry and never trips the "unknown node type"
// fallback if it's ever reached directly (e.g. a malformed workflow that
// wires a normal dependency into it).
type RepeaterExecutor struct{}

// NodeType implements executor.NodeExecutor.
func (e *RepeaterExecutor) NodeType() string { return "repeater" }

// Execute implements executor.NodeExecutor.
func (e *RepeaterExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	return workflow.Result{
		"repeater_control": true,
		"interval":         node.ConfigInt("interval", 0),
		"count":            node.ConfigInt("count", 0),
		"node_id":          node.ID,
	}, nil
}

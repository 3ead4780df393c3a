package manager

import (
	"context"

	"github.com/sypnex/flowrunner/pkg/workflow"
)

// repeaterNodeType is excluded from the executable set unconditionally: a
// repeater is a loop driver, not a data-path node (spec §4.5.1).
const repeaterNodeType = "repeater"

// classification is the per-workflow result of node classification (spec
// §4.5.1).
type classification struct {
	excluded map[string]bool
}

// classify loads every node's definition and marks it excluded when its
// definition declares frontend_only execution mode or its type is repeater.
func classify(ctx context.Context, nodes []workflow.Node, loader *DefinitionLoader) classification {
	c := classification{excluded: make(map[string]bool, len(nodes))}
	for _, n := range nodes {
		def := loader.Load(ctx, n.Type)
		c.excluded[n.ID] = def.IsFrontendOnly() || n.Type == repeaterNodeType
	}
	return c
}

// executableNodes returns the subset of nodes not excluded by c, preserving
// their original order.
func (c classification) executableNodes(nodes []workflow.Node) []workflow.Node {
	out := make([]workflow.Node, 0, len(nodes))
	for _, n := range nodes {
		if !c.excluded[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

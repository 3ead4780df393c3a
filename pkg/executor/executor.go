// Package executor defines the node executor contract and a thread-safe
// registry that dispatches by node type, mirroring the Strategy + Registry
// pattern the engine uses throughout.
package executor

import (
	"context"

	"github.com/sypnex/flowrunner/pkg/workflow"
)

// InputData maps a node's input port name to the value assembled for it by
// the execution manager for this invocation.
type InputData map[string]any

// NodeExecutor is the interface every built-in or custom node executor
// implements. Execute never returns a non-nil error for ordinary,
// domain-level failures (division by zero, missing file, bad input shape) —
// those are encoded as an `error` key in the returned Result. A non-nil
// error here signals a dispatch-level problem the registry could not
// recover from on its own.
type NodeExecutor interface {
	// Execute runs the node given its already-assembled per-port input
	// data, the map of all node results produced so far in this scope (for
	// node_reference lookups), and the id of the enclosing for_each node,
	// if any.
	Execute(ctx context.Context, node *workflow.Node, input InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error)

	// NodeType returns the node type string this executor registers for.
	NodeType() string
}

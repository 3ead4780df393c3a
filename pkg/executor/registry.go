package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/sypnex/flowrunner/pkg/workflow"
)

// Registry manages node executor registration and dispatch. The Registry
// dispatches strictly by node.Type; it never inspects inputs.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]NodeExecutor
	unknown   NodeExecutor
}

// NewRegistry creates a new empty executor registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]NodeExecutor)}
}

// Register adds an executor for its declared node type. It returns an error
// if that type is already registered.
func (r *Registry) Register(e NodeExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executors[e.NodeType()]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, e.NodeType())
	}
	r.executors[e.NodeType()] = e
	return nil
}

// MustRegister registers an executor and panics if registration fails. Used
// at startup wiring where a duplicate registration is a programming error.
func (r *Registry) MustRegister(e NodeExecutor) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// SetUnknownExecutor sets the fallback executor invoked for any node type
// that has no registered executor.
func (r *Registry) SetUnknownExecutor(e NodeExecutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unknown = e
}

// GetExecutor returns the executor registered for nodeType, if any.
func (r *Registry) GetExecutor(nodeType string) (NodeExecutor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[nodeType]
	return e, ok
}

// ListRegisteredTypes returns all currently registered node types.
func (r *Registry) ListRegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.executors))
	for t := range r.executors {
		types = append(types, t)
	}
	return types
}

// Execute dispatches a node to its registered executor, falling back to the
// unknown executor when no registration matches. Panics inside an executor
// are recovered and converted into an error so one bad node can never bring
// down the scheduler.
func (r *Registry) Execute(ctx context.Context, node *workflow.Node, input InputData, allResults map[string]workflow.Result, parentNodeID string) (result workflow.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("node %s (type %s) panicked: %v", node.ID, node.Type, p)
		}
	}()

	exec, ok := r.GetExecutor(node.Type)
	if !ok {
		if r.unknown == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoExecutorRegistered, node.Type)
		}
		exec = r.unknown
	}

	return exec.Execute(ctx, node, input, allResults, parentNodeID)
}

package manager

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// DefinitionLoader loads node definitions from `/nodes/<type>.node` in VFS
// and caches them for the lifetime of the process. The cache is read-mostly
// with no invalidation (spec §9: "Global mutable state"): a node type's
// definition is assumed stable for a runner's lifetime.
type DefinitionLoader struct {
	vfs   *vfsclient.Client
	cache sync.Map // node type -> *workflow.NodeDefinition
}

// NewDefinitionLoader creates a loader backed by vfs. A nil vfs is accepted
// for tests that only need the permissive default definition.
func NewDefinitionLoader(vfs *vfsclient.Client) *DefinitionLoader {
	return &DefinitionLoader{vfs: vfs}
}

// Load returns the node definition for nodeType, loading it from VFS on
// first use. Any failure to read or parse the definition — missing file,
// malformed JSON, no VFS client configured — yields the permissive default
// rather than an error; a missing definition is never fatal (spec §6).
func (l *DefinitionLoader) Load(ctx context.Context, nodeType string) *workflow.NodeDefinition {
	if cached, ok := l.cache.Load(nodeType); ok {
		return cached.(*workflow.NodeDefinition)
	}

	def := l.fetch(ctx, nodeType)
	actual, _ := l.cache.LoadOrStore(nodeType, def)
	return actual.(*workflow.NodeDefinition)
}

// Preset seeds the cache for nodeType directly, bypassing VFS. Tests use
// this to exercise frontend-only classification without a VFS fake; a
// runner may also use it to pin well-known node types at startup.
func (l *DefinitionLoader) Preset(nodeType string, def *workflow.NodeDefinition) {
	l.cache.Store(nodeType, def)
}

func (l *DefinitionLoader) fetch(ctx context.Context, nodeType string) *workflow.NodeDefinition {
	if l.vfs == nil {
		return workflow.DefaultNodeDefinition(nodeType)
	}

	env, err := l.vfs.Read(ctx, "/nodes/"+nodeType+".node")
	if err != nil {
		return workflow.DefaultNodeDefinition(nodeType)
	}

	var def workflow.NodeDefinition
	if err := json.Unmarshal([]byte(env.Content), &def); err != nil {
		return workflow.DefaultNodeDefinition(nodeType)
	}
	if def.ID == "" {
		def.ID = nodeType
	}
	if def.ExecutionMode == "" {
		def.ExecutionMode = workflow.ExecutionModeBoth
	}
	return &def
}

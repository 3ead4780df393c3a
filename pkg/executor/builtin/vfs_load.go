package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// VFSLoadExecutor reads a file from the virtual file system with
// format-aware interpretation (spec §4.6 "vfs_load").
type VFSLoadExecutor struct {
	VFS *vfsclient.Client
}

// NodeType implements executor.NodeExecutor.
func (e *VFSLoadExecutor) NodeType() string { return "vfs_load" }

// Execute implements executor.NodeExecutor.
func (e *VFSLoadExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	filePath := datautil.ApplyTemplates(node.ConfigString("file_path", ""), input, time.Now())
	format := node.ConfigString("format", "text")

	switch format {
	case "json":
		env, err := e.VFS.Read(ctx, filePath)
		if err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(env.Content), &parsed); err != nil {
			return workflow.Result{"error": fmt.Sprintf("failed to parse JSON content: %v", err)}, nil
		}
		return workflow.Result{"data": parsed, "json": parsed, "file_path": filePath}, nil

	case "text", "blob":
		env, err := e.VFS.Read(ctx, filePath)
		if err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
		return workflow.Result{"data": env.Content, "text": env.Content, "file_path": filePath}, nil

	case "binary":
		data, err := e.VFS.Download(ctx, filePath)
		if err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
		return workflow.Result{"data": data, "binary": data, "file_path": filePath}, nil

	default:
		return workflow.Result{"error": fmt.Sprintf("unknown format: %s. Supported formats are: json, text, blob, binary", format)}, nil
	}
}

package builtin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// VFSSaveExecutor writes data to the virtual file system with format-aware
// marshalling and overwrite/append semantics (spec §4.6 "vfs_save").
type VFSSaveExecutor struct {
	VFS *vfsclient.Client
}

// NodeType implements executor.NodeExecutor.
func (e *VFSSaveExecutor) NodeType() string { return "vfs_save" }

// Execute implements executor.NodeExecutor.
func (e *VFSSaveExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	filePath := datautil.ApplyTemplates(node.ConfigString("file_path", ""), input, time.Now())
	format := node.ConfigString("format", "text")
	overwrite := node.ConfigBool("overwrite", false)
	append_ := node.ConfigBool("append", false)

	if append_ && (format == "binary" || format == "blob") {
		return workflow.Result{"error": fmt.Sprintf("append is not supported for format %s", format)}, nil
	}

	data, _ := datautil.ResolvePort(input, "data")

	exists, err := e.VFS.Info(ctx, filePath)
	if err != nil {
		exists = false
	}

	if exists && !overwrite && !append_ {
		return workflow.Result{"error": fmt.Sprintf("File exists and neither overwrite nor append is enabled: %s", filePath)}, nil
	}

	parent, name := splitPath(filePath)

	switch format {
	case "json":
		if err := e.saveJSON(ctx, filePath, parent, name, data, exists, overwrite, append_); err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
	case "text":
		if err := e.saveText(ctx, filePath, parent, name, stringifyData(data), exists, overwrite, append_); err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
	case "blob":
		blobURL, err := toBlobURL(data)
		if err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
		if exists && overwrite {
			_ = e.VFS.Delete(ctx, filePath)
		}
		if err := e.VFS.CreateFile(ctx, parent, name, blobURL); err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
	case "binary":
		bytesData, ok := data.([]byte)
		if !ok {
			return workflow.Result{"error": "vfs_save format binary requires byte data"}, nil
		}
		if exists && overwrite {
			_ = e.VFS.Delete(ctx, filePath)
		}
		if err := e.VFS.UploadFile(ctx, parent, name, bytesData); err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
	default:
		return workflow.Result{"error": fmt.Sprintf("unknown format: %s", format)}, nil
	}

	return workflow.Result{"success": true, "file_path": filePath, "format": format}, nil
}

func (e *VFSSaveExecutor) saveJSON(ctx context.Context, filePath, parent, name string, data any, exists, overwrite, append_ bool) error {
	content := data

	if append_ && !overwrite && exists {
		env, err := e.VFS.Read(ctx, filePath)
		if err == nil {
			var existing any
			if env.Content != "" {
				_ = json.Unmarshal([]byte(env.Content), &existing)
			}
			if arr, ok := existing.([]any); ok {
				content = append(arr, content)
			} else if existing != nil {
				content = []any{existing, content}
			}
		}
		_ = e.VFS.Delete(ctx, filePath)
	} else if exists && overwrite {
		_ = e.VFS.Delete(ctx, filePath)
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON content: %w", err)
	}
	return e.VFS.CreateFile(ctx, parent, name, string(encoded))
}

func (e *VFSSaveExecutor) saveText(ctx context.Context, filePath, parent, name, content string, exists, overwrite, append_ bool) error {
	if append_ && !overwrite && exists {
		env, err := e.VFS.Read(ctx, filePath)
		if err == nil && env.Content != "" {
			content = env.Content + "\n" + content
		}
		_ = e.VFS.Delete(ctx, filePath)
	} else if exists && overwrite {
		_ = e.VFS.Delete(ctx, filePath)
	}
	return e.VFS.CreateFile(ctx, parent, name, content)
}

func stringifyData(data any) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toBlobURL(data any) (string, error) {
	switch v := data.(type) {
	case string:
		if strings.HasPrefix(v, "data:") {
			return v, nil
		}
		return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString([]byte(v)), nil
	case []byte:
		return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(v), nil
	default:
		return "", fmt.Errorf("vfs_save format blob requires string or byte data")
	}
}

// splitPath splits a VFS path into its parent directory and base name, the
// shape the create-file/upload-file endpoints expect.
func splitPath(path string) (parent, name string) {
	path = strings.TrimPrefix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "/", path
	}
	return "/" + path[:idx], path[idx+1:]
}

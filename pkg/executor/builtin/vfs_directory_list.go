package builtin

import (
	"context"
	"strings"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// VFSDirectoryListExecutor lists a VFS directory, optionally recursing into
// subdirectories and filtering by extension (spec §4.6 "vfs_directory_list",
// supplemented with recursive aggregation per SPEC_FULL.md).
type VFSDirectoryListExecutor struct {
	VFS *vfsclient.Client
	// MaxDepth bounds recursion so a pathological or cyclic directory tree
	// can't hang the executor.
	MaxDepth int
}

// NodeType implements executor.NodeExecutor.
func (e *VFSDirectoryListExecutor) NodeType() string { return "vfs_directory_list" }

// Execute implements executor.NodeExecutor.
func (e *VFSDirectoryListExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	dirPath := node.ConfigString("directory_path", "/")
	recursive := node.ConfigBool("recursive", false)
	includeDirectories := node.ConfigBool("include_directories", false)
	extensionsRaw := node.ConfigString("extensions", "")

	var extensions []string
	for _, ext := range strings.Split(extensionsRaw, ",") {
		ext = strings.TrimSpace(ext)
		if ext != "" {
			extensions = append(extensions, strings.ToLower(ext))
		}
	}

	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 32
	}

	var filePaths, fileNames, directories []string

	var walk func(path string, depth int) error
	walk = func(path string, depth int) error {
		if depth > maxDepth {
			return nil
		}
		env, err := e.VFS.List(ctx, path)
		if err != nil {
			return err
		}
		for _, item := range env.Items {
			itemPath := strings.TrimRight(path, "/") + "/" + item.Name
			if item.IsDirectory || item.Type == "directory" {
				if includeDirectories {
					directories = append(directories, itemPath)
				}
				if recursive {
					if err := walk(itemPath, depth+1); err != nil {
						return err
					}
				}
				continue
			}
			if len(extensions) > 0 && !hasAnyExtension(item.Name, extensions) {
				continue
			}
			filePaths = append(filePaths, itemPath)
			fileNames = append(fileNames, item.Name)
		}
		return nil
	}

	if err := walk(dirPath, 0); err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	fileList := make([]map[string]any, len(filePaths))
	for i, p := range filePaths {
		fileList[i] = map[string]any{"path": p, "name": fileNames[i]}
	}

	return workflow.Result{
		"file_list":   fileList,
		"file_paths":  filePaths,
		"file_names":  fileNames,
		"directories": directories,
		"files_only":  filePaths,
		"count":       len(filePaths),
	}, nil
}

func hasAnyExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

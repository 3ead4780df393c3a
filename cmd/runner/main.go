// Command runner executes flowrunner workflows from the command line.
//
// Usage:
//
//	runner run <workflow-path> [flags]
//	runner validate <workflow-path> [flags]
//
// Workflow paths are read through the VFS client: a bare path like
// /workflows/demo.json is fetched from --vfs-url, while a local path
// prefixed with file:// is read directly off disk for quick iteration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "runner",
		Short: "flowrunner workflow execution CLI",
		Long:  "Load, validate, and execute flowrunner workflows against a VFS-backed document store.",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

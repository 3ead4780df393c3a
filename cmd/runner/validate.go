package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sypnex/flowrunner/pkg/manager"
)

func validateCmd() *cobra.Command {
	f := execFlags{}

	cmd := &cobra.Command{
		Use:   "validate <workflow-path>",
		Short: "Check a workflow for cycles and unsupported nesting without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateWorkflow(cmd.Context(), args[0], f)
		},
	}

	addCommonFlags(cmd.Flags(), &f.common)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Optional YAML config file overlaid on the built-in defaults")
	return cmd
}

func validateWorkflow(ctx context.Context, path string, f execFlags) error {
	logger := newLogger(f.common.logLevel)
	cfg, err := newExecConfig(f)
	if err != nil {
		return err
	}

	httpClient, err := newHTTPClient(ctx, cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("building http client: %w", err)
	}

	vfs := newVFSClient(f.common, httpClient)

	wf, err := loadWorkflow(ctx, path, vfs)
	if err != nil {
		return err
	}

	loader := manager.NewDefinitionLoader(vfs)
	mgr := manager.New(nil, loader, cfg, logger, nil, nil)

	if err := mgr.Validate(ctx, wf); err != nil {
		fmt.Printf("invalid: %v\n", err)
		return err
	}

	fmt.Printf("valid: %d nodes, %d connections\n", len(wf.Nodes), len(wf.Connections))
	return nil
}

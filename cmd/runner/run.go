package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/executor/builtin"
	"github.com/sypnex/flowrunner/pkg/httpclient"
	"github.com/sypnex/flowrunner/pkg/manager"
	"github.com/sypnex/flowrunner/pkg/metrics"
	"github.com/sypnex/flowrunner/pkg/telemetry"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func runCmd() *cobra.Command {
	f := execFlags{}

	cmd := &cobra.Command{
		Use:   "run <workflow-path>",
		Short: "Execute a workflow to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd.Context(), args[0], f)
		},
	}

	addCommonFlags(cmd.Flags(), &f.common)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Optional YAML config file overlaid on the built-in defaults")
	cmd.Flags().DurationVar(&f.maxExecutionTime, "max-execution-time", 0, "Override the default wall-clock execution budget")
	cmd.Flags().IntVar(&f.maxNodeExecutions, "max-node-executions", 0, "Override the default total node execution cap (0 = default)")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "Override the default for_each/repeater iteration cap")
	cmd.Flags().IntVar(&f.workerPoolSize, "worker-pool-size", 0, "Override the default ready-set worker pool size")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "If set, serve Prometheus metrics on this address while the workflow runs")
	cmd.Flags().StringToStringVar(&f.namedClients, "named-client", nil, "Pre-register an HTTP client as name=baseURL for http nodes to reference via client_name")

	return cmd
}

func runWorkflow(ctx context.Context, path string, f execFlags) error {
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

	collector := metrics.NewCollector("flowrunner")
	if f.metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			logger.Infof("serving metrics on %s", f.metricsAddr)
			if err := http.ListenAndServe(f.metricsAddr, mux); err != nil {
				logger.Errorf("metrics server stopped: %v", err)
			}
		}()
	}

	clients := httpclient.NewRegistry()
	if err := registerNamedClients(ctx, clients, f.namedClients); err != nil {
		return err
	}

	reg := executor.NewRegistry()
	builtin.Register(reg, httpClient, clients, f.common.vfsURL, f.common.proxyURL, f.common.sessionToken, cfg.MaxDirectoryDepth)

	loader := manager.NewDefinitionLoader(vfs)

	telemetryProvider, err := telemetry.NewProvider(ctx, telemetry.DefaultConfig())
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer telemetryProvider.Shutdown(ctx)

	observers := []telemetry.Observer{telemetry.NewTracingObserver(telemetryProvider)}

	mgr := manager.New(reg, loader, cfg, logger, observers, collector)

	workflowID := uuid.NewString()
	collector.IncInFlight()
	results, runErr := mgr.Run(ctx, wf, workflowID)
	collector.DecInFlight()

	printResults(results)

	if runErr != nil {
		logger.Errorf("workflow run failed: %v", runErr)
		return runErr
	}
	logger.Info("workflow run completed")
	return nil
}

func printResults(results map[string]workflow.Result) {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		glyph := "✓"
		if _, failed := results[id]["error"]; failed {
			glyph = "✗"
		}
		fmt.Printf("%s %-24s %v\n", glyph, id, results[id])
	}
}

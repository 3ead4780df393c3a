package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sypnex/flowrunner/pkg/config"
	"github.com/sypnex/flowrunner/pkg/httpclient"
	"github.com/sypnex/flowrunner/pkg/logging"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// commonFlags are shared between the run and validate subcommands.
type commonFlags struct {
	vfsURL       string
	proxyURL     string
	sessionToken string
	logLevel     string
}

func addCommonFlags(cmd flagSetter, f *commonFlags) {
	cmd.StringVar(&f.vfsURL, "vfs-url", "http://localhost:8080", "Base URL of the VFS document store")
	cmd.StringVar(&f.proxyURL, "proxy-url", "http://localhost:8080", "Base URL of the outbound HTTP proxy")
	cmd.StringVar(&f.sessionToken, "session-token", "", "Session token forwarded to VFS and proxy requests")
	cmd.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// flagSetter is the subset of *pflag.FlagSet (via cobra.Command.Flags())
// used above, kept narrow so common.go doesn't need to import cobra.
type flagSetter interface {
	StringVar(p *string, name string, value string, usage string)
}

// loadWorkflow fetches a workflow document either from local disk (path
// prefixed with file://, for quick iteration) or from the VFS store.
func loadWorkflow(ctx context.Context, path string, vfs *vfsclient.Client) (*workflow.Workflow, error) {
	var raw []byte

	if local, ok := strings.CutPrefix(path, "file://"); ok {
		data, err := os.ReadFile(local)
		if err != nil {
			return nil, fmt.Errorf("reading local workflow %s: %w", local, err)
		}
		raw = data
	} else {
		env, err := vfs.Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("reading workflow %s from VFS: %w", path, err)
		}
		raw = []byte(env.Content)
	}

	wf, err := workflow.NewParser().Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing workflow %s: %w", path, err)
	}
	return wf, nil
}

func newLogger(level string) *logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Pretty = true
	return logging.New(cfg)
}

func newVFSClient(f commonFlags, httpClient *http.Client) *vfsclient.Client {
	return vfsclient.New(f.vfsURL, f.sessionToken, httpClient)
}

func newHTTPClient(ctx context.Context, timeout time.Duration) (*http.Client, error) {
	cfg := &httpclient.Config{
		UID:     "runner-default",
		Network: httpclient.NetworkConfig{Timeout: timeout},
	}
	return httpclient.New(ctx, cfg)
}

func newExecConfig(f execFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadYAML(f.configPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = loaded
	}
	if f.maxExecutionTime > 0 {
		cfg.MaxExecutionTime = f.maxExecutionTime
	}
	if f.maxNodeExecutions > 0 {
		cfg.MaxNodeExecutions = f.maxNodeExecutions
	}
	if f.maxIterations > 0 {
		cfg.MaxIterations = f.maxIterations
	}
	if f.workerPoolSize > 0 {
		cfg.WorkerPoolSize = f.workerPoolSize
	}
	cfg.VFSBaseURL = f.common.vfsURL
	cfg.ProxyBaseURL = f.common.proxyURL
	cfg.SessionToken = f.common.sessionToken
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// execFlags bundles the tunables the run subcommand exposes over
// config.Default().
type execFlags struct {
	common            commonFlags
	configPath        string
	maxExecutionTime  time.Duration
	maxNodeExecutions int
	maxIterations     int
	workerPoolSize    int
	metricsAddr       string
	namedClients      map[string]string
}

// registerNamedClients builds one httpclient.Client per name=baseURL pair
// and registers it under Registry, so "http" nodes can reference it by
// name instead of going through the shared proxy.
func registerNamedClients(ctx context.Context, reg *httpclient.Registry, named map[string]string) error {
	for name, baseURL := range named {
		client, err := httpclient.New(ctx, &httpclient.Config{
			UID:     name,
			BaseURL: baseURL,
			Network: httpclient.NetworkConfig{Timeout: 30 * time.Second},
		})
		if err != nil {
			return fmt.Errorf("registering named client %q: %w", name, err)
		}
		if err := reg.Register(name, client); err != nil {
			return fmt.Errorf("registering named client %q: %w", name, err)
		}
	}
	return nil
}

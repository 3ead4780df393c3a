package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of Config exposed to YAML files. Durations
// are parsed as Go duration strings ("30s", "5m") rather than nanosecond
// integers, which is friendlier to hand-written config files.
type fileConfig struct {
	MaxExecutionTime  string `yaml:"max_execution_time"`
	MaxNodeExecutions int    `yaml:"max_node_executions"`
	MaxIterations     int    `yaml:"max_iterations"`

	HTTPTimeout     string `yaml:"http_timeout"`
	MaxHTTPRetries  int    `yaml:"max_http_retries"`
	MaxResponseSize int64  `yaml:"max_response_size"`

	WorkerPoolSize int `yaml:"worker_pool_size"`

	VFSBaseURL   string `yaml:"vfs_base_url"`
	ProxyBaseURL string `yaml:"proxy_base_url"`
	SessionToken string `yaml:"session_token"`

	MaxDirectoryDepth int `yaml:"max_directory_depth"`
}

// LoadYAML reads a YAML file and overlays its values onto base, returning a
// new Config. Fields absent from the file keep base's value. An empty or
// missing duration field is left untouched rather than parsed as zero.
func LoadYAML(path string, base *Config) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseFailed, err)
	}

	cfg := base.Clone()

	if fc.MaxExecutionTime != "" {
		d, err := time.ParseDuration(fc.MaxExecutionTime)
		if err != nil {
			return nil, fmt.Errorf("%w: max_execution_time: %v", ErrConfigParseFailed, err)
		}
		cfg.MaxExecutionTime = d
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: http_timeout: %v", ErrConfigParseFailed, err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.MaxNodeExecutions != 0 {
		cfg.MaxNodeExecutions = fc.MaxNodeExecutions
	}
	if fc.MaxIterations != 0 {
		cfg.MaxIterations = fc.MaxIterations
	}
	if fc.MaxHTTPRetries != 0 {
		cfg.MaxHTTPRetries = fc.MaxHTTPRetries
	}
	if fc.MaxResponseSize != 0 {
		cfg.MaxResponseSize = fc.MaxResponseSize
	}
	if fc.WorkerPoolSize != 0 {
		cfg.WorkerPoolSize = fc.WorkerPoolSize
	}
	if fc.VFSBaseURL != "" {
		cfg.VFSBaseURL = fc.VFSBaseURL
	}
	if fc.ProxyBaseURL != "" {
		cfg.ProxyBaseURL = fc.ProxyBaseURL
	}
	if fc.SessionToken != "" {
		cfg.SessionToken = fc.SessionToken
	}
	if fc.MaxDirectoryDepth != 0 {
		cfg.MaxDirectoryDepth = fc.MaxDirectoryDepth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

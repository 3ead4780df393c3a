package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidExecutionTime     = errors.New("invalid max execution time: must be non-negative")
	ErrInvalidMaxNodeExecutions = errors.New("invalid max node executions: must be non-negative")
	ErrInvalidMaxIterations     = errors.New("invalid max iterations: must be non-negative")

	ErrInvalidHTTPTimeout     = errors.New("invalid HTTP timeout: must be non-negative")
	ErrInvalidMaxRetries      = errors.New("invalid max HTTP retries: must be between 0 and 3")
	ErrInvalidMaxResponseSize = errors.New("invalid max response size: must be non-negative")

	ErrInvalidWorkerPoolSize    = errors.New("invalid worker pool size: must be positive")
	ErrInvalidMaxDirectoryDepth = errors.New("invalid max directory depth: must be positive")

	ErrConfigFileNotFound = errors.New("configuration file not found")
	ErrConfigParseFailed  = errors.New("failed to parse configuration file")
)

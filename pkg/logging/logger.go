// Package logging wraps slog with the handful of workflow-execution fields
// (workflow_id, execution_id, node_id, node_type, iteration) that show up on
// nearly every log line the manager emits. Values passed through WithField
// that implement fmt.Stringer or json.Marshaler (httpclient.SecureString
// does both) are left to format themselves, so a credential handed to the
// logger by a careless caller still renders redacted rather than in the
// clear.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// contextKey namespaces values this package stores on a context.Context.
type contextKey string

// ContextKeyLogger is the key under which WithContext/FromContext store and
// retrieve the active Logger.
const ContextKeyLogger contextKey = "logger"

// Logger is a slog.Logger carrying a running set of structured fields.
// Every With* method returns a new Logger so callers can fork a base logger
// per workflow run, per node, or per for_each iteration without the forks
// stepping on each other's fields.
type Logger struct {
	logger *slog.Logger
}

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string
	// Output is where logs are written (default: os.Stdout)
	Output io.Writer
	// Pretty enables human-readable text output (default: false for JSON)
	Pretty bool
	// IncludeCaller includes source location in logs (default: false)
	IncludeCaller bool
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		Output:        os.Stdout,
		Pretty:        false,
		IncludeCaller: false,
	}
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds a Logger from cfg, choosing a text or JSON slog.Handler
// depending on cfg.Pretty. An unrecognized Level falls back to info rather
// than erroring, since a bad --log-level flag shouldn't keep a workflow
// from running.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level), AddSource: cfg.IncludeCaller}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// parseLevel maps a level name to its slog.Level, falling back to info for
// an unrecognized or empty name.
func parseLevel(name string) slog.Level {
	if level, ok := levelNames[name]; ok {
		return level
	}
	return slog.LevelInfo
}

// WithContext stores l on ctx for handlers further down a call chain that
// only have access to the context, not the caller's Logger value.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, l)
}

// FromContext retrieves the logger WithContext stored, or a fresh
// default-configured one if none was stored.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(ContextKeyLogger).(*Logger); ok {
		return logger
	}
	return New(DefaultConfig())
}

// with forks l with one additional structured field. Every WithXxx helper
// below is a thin, type-safe wrapper over this.
func (l *Logger) with(attr slog.Attr) *Logger {
	return &Logger{logger: slog.New(l.logger.Handler().WithAttrs([]slog.Attr{attr}))}
}

// WithWorkflowID tags the logger with the workflow run it belongs to.
func (l *Logger) WithWorkflowID(workflowID string) *Logger {
	return l.with(slog.String("workflow_id", workflowID))
}

// WithExecutionID tags the logger with the run's unique execution id,
// distinct from workflow_id since the same workflow document can be run
// more than once concurrently.
func (l *Logger) WithExecutionID(executionID string) *Logger {
	return l.with(slog.String("execution_id", executionID))
}

// WithNodeID tags the logger with the node currently being executed.
func (l *Logger) WithNodeID(nodeID string) *Logger {
	return l.with(slog.String("node_id", nodeID))
}

// WithNodeType tags the logger with the node's type, alongside WithNodeID,
// so a log line is groupable by kind of node as well as by specific id.
func (l *Logger) WithNodeType(nodeType string) *Logger {
	return l.with(slog.String("node_type", nodeType))
}

// WithIteration tags the logger with which for_each/repeater pass produced
// a log line, so concurrent iterations' output can be told apart.
func (l *Logger) WithIteration(iterationID string, index int) *Logger {
	return &Logger{logger: slog.New(l.logger.Handler().WithAttrs([]slog.Attr{
		slog.String("iteration_id", iterationID),
		slog.Int("iteration_index", index),
	}))}
}

// WithField forks the logger with one arbitrary key/value pair. Prefer a
// dedicated WithXxx above when one exists; this is the escape hatch for
// everything else.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.with(slog.Any(key, value))
}

// WithFields forks the logger with several arbitrary key/value pairs in one
// call, avoiding a WithField chain when a caller already has a map.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return &Logger{logger: slog.New(l.logger.Handler().WithAttrs(attrs))}
}

// WithError forks the logger with an error field, formatted through slog's
// usual %v-equivalent handling rather than error.Error() directly so a nil
// error still renders sensibly.
func (l *Logger) WithError(err error) *Logger {
	return l.with(slog.Any("error", err))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) { l.logger.Debug(msg) }

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) { l.logger.Debug(fmt.Sprintf(format, args...)) }

// Info logs an info message.
func (l *Logger) Info(msg string) { l.logger.Info(msg) }

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) { l.logger.Info(fmt.Sprintf(format, args...)) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string) { l.logger.Warn(msg) }

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) { l.logger.Warn(fmt.Sprintf(format, args...)) }

// Error logs an error message.
func (l *Logger) Error(msg string) { l.logger.Error(msg) }

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logger.Error(fmt.Sprintf(format, args...)) }

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string) {
	l.logger.Error(msg)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// GetSlogLogger returns the underlying slog.Logger for advanced use cases.
func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// Package logging provides structured logging capabilities for the workflow engine.
//
// # Overview
//
// The logging package wraps log/slog. A Logger carries a running set of
// structured fields, and every With* method returns a new Logger, so a base
// logger can be forked per workflow run, per node, or per for_each
// iteration.
//
// # Features
//
//   - Structured logging: JSON (default) and text output
//   - Log levels: debug, info, warn (or warning), error
//   - Execution fields: workflow ID, execution ID, node ID, node type, iteration
//   - Levels below the configured minimum are filtered by the slog handler
//   - Thread-safe: Safe for concurrent use
//   - Flexible output: Write to any io.Writer
//
// # Log Levels
//
// Config.Level takes one of these names; any other name (including the
// empty string) selects info:
//
//   - debug: Detailed diagnostic information
//   - info: General informational messages
//   - warn, warning: Warning messages for potential issues
//   - error: Error messages for failures
//
// # Basic Usage
//
//	import "github.com/sypnex/flowrunner/pkg/logging"
//
//	// Create logger
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	// Log messages
//	logger.WithWorkflowID("wf-123").WithField("node_count", 42).Info("Workflow started")
//
//	logger.WithNodeID("node-5").WithError(err).Error("Execution failed")
//
// # Context Integration
//
// WithContext stores a Logger on a context; FromContext retrieves it, or a
// new default-configured Logger when none was stored:
//
//	ctx = logger.WithContext(ctx)
//	logging.FromContext(ctx).WithNodeType("http").Info("Node executing")
//
// # Structured Fields
//
// Several fields can be attached in one call:
//
//	logger.WithFields(map[string]interface{}{
//	    "method": "GET",
//	    "url": "https://api.example.com",
//	    "status": 200,
//	    "duration_ms": 145,
//	}).Info("HTTP request completed")
//
// # Output Formats
//
// JSON format (Pretty false, the default):
//
//	{"time":"2024-01-15T10:30:00.000Z","level":"INFO","msg":"Workflow started","workflow_id":"wf-123","execution_id":"exec-456"}
//
// Text format (Pretty true):
//
//	time=2024-01-15T10:30:00.000Z level=INFO msg="Workflow started" workflow_id=wf-123 execution_id=exec-456
//
// # Configuration
//
// Logger configuration options:
//
//	config := logging.Config{
//	    Level:         "debug",   // Minimum level to log
//	    Output:        os.Stdout, // Where to write logs (nil means os.Stdout)
//	    Pretty:        false,     // Text output instead of JSON
//	    IncludeCaller: true,      // Include source file:line
//	}
//
// # Common Logging Patterns
//
// Workflow execution:
//
//	runLogger := logger.WithWorkflowID(workflowID).WithExecutionID(executionID)
//	runLogger.Infof("Workflow execution started with %d nodes", len(wf.Nodes))
//
// Node execution:
//
//	runLogger.WithNodeID(node.ID).WithNodeType(node.Type).Debug("Node executing")
//
// Error logging:
//
//	runLogger.WithNodeID(node.ID).WithError(err).Warn("node execution failed")
//
// Iterations:
//
//	runLogger.WithIteration(forEachNodeID, index).Info("Iteration started")
//
// # Best Practices
//
//   - Use structured fields instead of string formatting
//   - Include execution context (workflow_id, node_id, etc.)
//   - Log at appropriate levels (avoid debug in production)
//   - Add timing information for performance analysis
//   - Include error context (not just error message)
//   - Use consistent field names across the codebase
//
// # Thread Safety
//
// All logger operations are thread-safe and can be used concurrently
// from multiple goroutines without additional synchronization.
//
// # Testing
//
// For testing, use a logger with a buffer:
//
//	buf := &bytes.Buffer{}
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: buf,
//	})
//
//	// Execute code
//	// Verify log output
//	if !strings.Contains(buf.String(), "expected message") {
//	    t.Errorf("log output = %s", buf.String())
//	}
package logging

// Package telemetry wraps OpenTelemetry tracing for the execution engine: a
// Provider owns the TracerProvider for the runner's lifetime, and a
// TracingObserver turns Execution Manager lifecycle events into spans
// around each workflow run and each node execution, following the same
// Observer pattern the example pool uses to decouple the engine from any
// one observability backend.
package telemetry

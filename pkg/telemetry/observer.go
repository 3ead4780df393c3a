package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EventType identifies one point in the execution lifecycle an Observer can
// react to.
type EventType string

const (
	EventWorkflowStart EventType = "workflow_start"
	EventWorkflowEnd   EventType = "workflow_end"
	EventNodeStart     EventType = "node_start"
	EventNodeSuccess   EventType = "node_success"
	EventNodeFailure   EventType = "node_failure"
)

// Status reports the outcome carried by an end-of-lifecycle event.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is a single execution-lifecycle notification emitted by the
// Execution Manager. Observers use it to record spans, metrics, or logs
// without the manager depending on any particular observability backend.
type Event struct {
	Type        EventType
	ExecutionID string
	WorkflowID  string
	NodeID      string
	NodeType    string
	Status      Status
	Error       error
	Timestamp   time.Time
	Metadata    map[string]any
}

// Observer reacts to execution-lifecycle events. Implementations must not
// block the caller for long; the manager emits events synchronously, workflow
// events from the goroutine running Manager.Run and node events from the
// worker goroutine executing that node, several of which run concurrently.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// TracingObserver implements Observer by opening and closing OpenTelemetry
// spans around workflow and node execution.
type TracingObserver struct {
	provider *Provider

	mu           sync.Mutex
	workflowSpan trace.Span
	nodeSpans    map[string]trace.Span
}

// NewTracingObserver creates an Observer that records spans via provider.
func NewTracingObserver(provider *Provider) *TracingObserver {
	return &TracingObserver{
		provider:  provider,
		nodeSpans: make(map[string]trace.Span),
	}
}

// OnEvent dispatches an event to the matching span lifecycle handler.
func (o *TracingObserver) OnEvent(ctx context.Context, event Event) {
	switch event.Type {
	case EventWorkflowStart:
		o.startWorkflow(ctx, event)
	case EventWorkflowEnd:
		o.endWorkflow(event)
	case EventNodeStart:
		o.startNode(ctx, event)
	case EventNodeSuccess, EventNodeFailure:
		o.endNode(event)
	}
}

func (o *TracingObserver) startWorkflow(ctx context.Context, event Event) {
	_, span := o.provider.Tracer().Start(ctx, "workflow.execute",
		trace.WithAttributes(
			attribute.String("workflow.id", event.WorkflowID),
			attribute.String("execution.id", event.ExecutionID),
		),
	)
	o.mu.Lock()
	o.workflowSpan = span
	o.mu.Unlock()
}

func (o *TracingObserver) endWorkflow(event Event) {
	o.mu.Lock()
	span := o.workflowSpan
	o.workflowSpan = nil
	o.mu.Unlock()

	if span == nil {
		return
	}
	if event.Error != nil {
		span.RecordError(event.Error)
		span.SetStatus(codes.Error, event.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "workflow completed")
	}
	span.End()
}

func (o *TracingObserver) startNode(ctx context.Context, event Event) {
	o.mu.Lock()
	parent := o.workflowSpan
	o.mu.Unlock()

	spanCtx := ctx
	if parent != nil {
		spanCtx = trace.ContextWithSpan(ctx, parent)
	}

	_, span := o.provider.Tracer().Start(spanCtx, "node.execute",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("node.type", event.NodeType),
			attribute.String("execution.id", event.ExecutionID),
		),
	)

	o.mu.Lock()
	o.nodeSpans[event.NodeID] = span
	o.mu.Unlock()
}

func (o *TracingObserver) endNode(event Event) {
	o.mu.Lock()
	span, ok := o.nodeSpans[event.NodeID]
	delete(o.nodeSpans, event.NodeID)
	o.mu.Unlock()

	if !ok {
		return
	}
	if event.Error != nil {
		span.RecordError(event.Error)
		span.SetStatus(codes.Error, event.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "node completed")
	}
	span.End()
}

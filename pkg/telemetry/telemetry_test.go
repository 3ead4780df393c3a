package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		config Config
	}{
		{name: "default config", config: DefaultConfig()},
		{name: "tracing disabled", config: Config{EnableTracing: false}},
		{
			name: "custom config",
			config: Config{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Environment:    "test",
				EnableTracing:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(ctx, tt.config)
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if provider.Tracer() == nil {
				t.Error("Tracer() returned nil")
			}
			if err := provider.Shutdown(ctx); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestTracingObserver_WorkflowLifecycle(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer provider.Shutdown(ctx)

	observer := NewTracingObserver(provider)

	observer.OnEvent(ctx, Event{
		Type:        EventWorkflowStart,
		WorkflowID:  "wf-1",
		ExecutionID: "exec-1",
		Timestamp:   time.Now(),
	})

	if observer.workflowSpan == nil {
		t.Fatal("expected workflow span to be recorded")
	}

	observer.OnEvent(ctx, Event{
		Type:        EventWorkflowEnd,
		WorkflowID:  "wf-1",
		ExecutionID: "exec-1",
		Status:      StatusSuccess,
	})

	if observer.workflowSpan != nil {
		t.Error("expected workflow span to be cleared after end event")
	}
}

func TestTracingObserver_NodeLifecycle(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer provider.Shutdown(ctx)

	observer := NewTracingObserver(provider)

	observer.OnEvent(ctx, Event{Type: EventNodeStart, NodeID: "n1", NodeType: "http"})
	if _, ok := observer.nodeSpans["n1"]; !ok {
		t.Fatal("expected node span to be recorded")
	}

	observer.OnEvent(ctx, Event{Type: EventNodeFailure, NodeID: "n1", Error: errors.New("boom")})
	if _, ok := observer.nodeSpans["n1"]; ok {
		t.Error("expected node span to be cleared after failure event")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("first Shutdown() error = %v", err)
	}
	_ = provider.Shutdown(ctx)
}

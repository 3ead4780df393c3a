// Package metrics exposes workflow execution counters and histograms to
// Prometheus. A Collector owns its own registry rather than registering
// against the global default, so a runner process can host more than one
// without collector-name collisions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// Collector wraps the Prometheus collectors for one runner process. It
// implements manager.MetricsRecorder.
type Collector struct {
	registry *prometheus.Registry

	nodeExecutionsTotal *prometheus.CounterVec
	nodeDurationSeconds *prometheus.HistogramVec
	forEachIterations   *prometheus.CounterVec
	workflowsTotal      *prometheus.CounterVec
	workflowDuration    *prometheus.HistogramVec
	workflowsInFlight   prometheus.Gauge
}

// NewCollector builds a Collector with its metrics registered under
// namespace, along with the standard Go/process collectors.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	c := &Collector{
		registry: registry,

		nodeExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_executions_total",
				Help:      "Total number of node executions by type and outcome",
			},
			[]string{"node_type", "status"},
		),

		nodeDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "node_duration_seconds",
				Help:      "Duration of a single node execution",
				Buckets:   durationBuckets,
			},
			[]string{"node_type"},
		),

		forEachIterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "for_each_iterations_total",
				Help:      "Total number of for_each loop iterations executed",
			},
			[]string{"node_id"},
		),

		workflowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflow_completions_total",
				Help:      "Total number of workflow runs by outcome",
			},
			[]string{"status"},
		),

		workflowDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "workflow_duration_seconds",
				Help:      "Duration of a complete workflow run",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"status"},
		),

		workflowsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workflows_in_flight",
				Help:      "Number of workflow runs currently executing",
			},
		),
	}

	registry.MustRegister(
		c.nodeExecutionsTotal,
		c.nodeDurationSeconds,
		c.forEachIterations,
		c.workflowsTotal,
		c.workflowDuration,
		c.workflowsInFlight,
	)

	return c
}

// RecordNodeExecution implements manager.MetricsRecorder.
func (c *Collector) RecordNodeExecution(nodeType string, duration time.Duration, failed bool) {
	status := "success"
	if failed {
		status = "failed"
	}
	c.nodeExecutionsTotal.WithLabelValues(nodeType, status).Inc()
	c.nodeDurationSeconds.WithLabelValues(nodeType).Observe(duration.Seconds())
}

// RecordForEachIteration implements manager.MetricsRecorder.
func (c *Collector) RecordForEachIteration(nodeID string) {
	c.forEachIterations.WithLabelValues(nodeID).Inc()
}

// RecordWorkflowCompletion implements manager.MetricsRecorder.
func (c *Collector) RecordWorkflowCompletion(workflowID string, duration time.Duration, failed bool) {
	status := "success"
	if failed {
		status = "failed"
	}
	c.workflowsTotal.WithLabelValues(status).Inc()
	c.workflowDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// IncInFlight and DecInFlight track concurrently running workflows; a
// runner calls these around its Manager.Run invocation.
func (c *Collector) IncInFlight() { c.workflowsInFlight.Inc() }
func (c *Collector) DecInFlight() { c.workflowsInFlight.Dec() }

// Handler returns an HTTP handler serving this collector's registry in the
// Prometheus text exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

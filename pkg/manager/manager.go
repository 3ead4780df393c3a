package manager

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sypnex/flowrunner/pkg/config"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/graph"
	"github.com/sypnex/flowrunner/pkg/logging"
	"github.com/sypnex/flowrunner/pkg/telemetry"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// MetricsRecorder is the subset of pkg/metrics.Collector the manager depends
// on. Defined here, on the consumer side, so manager never imports metrics
// directly.
type MetricsRecorder interface {
	RecordNodeExecution(nodeType string, duration time.Duration, failed bool)
	RecordForEachIteration(nodeID string)
	RecordWorkflowCompletion(workflowID string, duration time.Duration, failed bool)
}

// Manager is the Execution Manager (spec §4.5): it owns the registry, the
// node-definition cache, and the configuration that bounds one workflow
// run.
type Manager struct {
	registry  *executor.Registry
	loader    *DefinitionLoader
	cfg       *config.Config
	logger    *logging.Logger
	observers []telemetry.Observer
	metrics   MetricsRecorder
}

// New creates a Manager. cfg, logger must be non-nil; observers and metrics
// are optional (nil metrics disables recording).
func New(reg *executor.Registry, loader *DefinitionLoader, cfg *config.Config, logger *logging.Logger, observers []telemetry.Observer, metrics MetricsRecorder) *Manager {
	return &Manager{
		registry:  reg,
		loader:    loader,
		cfg:       cfg,
		logger:    logger,
		observers: observers,
		metrics:   metrics,
	}
}

// runState carries everything that's scoped to a single workflow run (or,
// inside a for_each iteration, a single iteration's overlay) across the
// recursive scheduler calls.
type runState struct {
	cfg           *config.Config
	logger        *logging.Logger
	observers     []telemetry.Observer
	metrics       MetricsRecorder
	workflowID    string
	executionID   string
	rewiredGraph  *graph.Graph
	results       *resultStore
	executedCount *int64
}

func (r *runState) withResults(results *resultStore) *runState {
	clone := *r
	clone.results = results
	return &clone
}

// withIteration tags the run's logger with for_each/repeater iteration
// metadata so every node log line inside one iteration can be correlated
// back to it.
func (r *runState) withIteration(iterationID string, index int) *runState {
	clone := *r
	if r.logger != nil {
		clone.logger = r.logger.WithIteration(iterationID, index)
	}
	return &clone
}

// nodeLogger returns a logger tagged with node identity, falling back to a
// fresh default logger if the run was built without one (e.g. Validate's
// lint-only path never constructs a runState at all, but defensive nil
// callers elsewhere shouldn't panic).
func (r *runState) nodeLogger(node *workflow.Node) *logging.Logger {
	logger := r.logger
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return logger.WithNodeID(node.ID).WithNodeType(node.Type)
}

func (r *runState) bumpExecutionCount() error {
	if r.cfg.MaxNodeExecutions <= 0 {
		return nil
	}
	if atomic.AddInt64(r.executedCount, 1) > int64(r.cfg.MaxNodeExecutions) {
		return ErrMaxNodeExecutions
	}
	return nil
}

func (r *runState) recordNode(nodeType string, result workflow.Result, duration time.Duration) {
	if r.metrics == nil {
		return
	}
	_, failed := result["error"]
	r.metrics.RecordNodeExecution(nodeType, duration, failed)
}

func (r *runState) emit(ctx context.Context, eventType telemetry.EventType, node *workflow.Node, err error) {
	if len(r.observers) == 0 {
		return
	}
	status := telemetry.StatusSuccess
	if err != nil {
		status = telemetry.StatusFailure
	}
	event := telemetry.Event{
		Type:        eventType,
		ExecutionID: r.executionID,
		WorkflowID:  r.workflowID,
		NodeID:      node.ID,
		NodeType:    node.Type,
		Status:      status,
		Error:       err,
		Timestamp:   time.Now(),
	}
	for _, o := range r.observers {
		o.OnEvent(ctx, event)
	}
}

// Validate runs the same bootstrap-time checks Run performs before
// scheduling anything — cycle detection and the repeater-inside-for_each
// rule — without executing a single node. It's the entry point for a
// "dry run" / lint pass over a workflow document.
func (m *Manager) Validate(ctx context.Context, wf *workflow.Workflow) error {
	class := classify(ctx, wf.Nodes, m.loader)
	return validateGraph(wf.Nodes, wf.Connections, class.excluded)
}

// Run executes wf to completion: single pass if it has no repeater node,
// looped per the repeater's interval/count otherwise (spec §4.5.6). It
// returns every node's last-produced result, including partial results from
// a run that stopped early or hit an unreachable-node warning.
func (m *Manager) Run(ctx context.Context, wf *workflow.Workflow, workflowID string) (map[string]workflow.Result, error) {
	if m.cfg.MaxExecutionTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.MaxExecutionTime)
		defer cancel()
	}

	class := classify(ctx, wf.Nodes, m.loader)
	if err := validateGraph(wf.Nodes, wf.Connections, class.excluded); err != nil {
		return nil, err
	}

	rewiredConns := graph.Rewire(wf.Connections, class.excluded)
	executableNodes := class.executableNodes(wf.Nodes)
	rewiredGraph := graph.New(executableNodes, rewiredConns)

	executionID := uuid.NewString()
	runLogger := m.logger
	if runLogger != nil {
		runLogger = runLogger.WithWorkflowID(workflowID).WithExecutionID(executionID)
	}

	var count int64
	run := &runState{
		cfg:           m.cfg,
		logger:        runLogger,
		observers:     m.observers,
		metrics:       m.metrics,
		workflowID:    workflowID,
		executionID:   executionID,
		rewiredGraph:  rewiredGraph,
		results:       newResultStore(nil),
		executedCount: &count,
	}

	start := time.Now()
	run.emitWorkflow(ctx, telemetry.EventWorkflowStart, nil)

	repeaterNode := findRepeaterNode(wf.Nodes)

	var runErr error
	if repeaterNode == nil {
		_, runErr = m.scheduleReadySets(ctx, run, rewiredGraph, nodeIDs(executableNodes), "")
	} else {
		runErr = m.runRepeaterLoop(ctx, run, rewiredGraph, nodeIDs(executableNodes), repeaterNode)
	}

	run.emitWorkflow(ctx, telemetry.EventWorkflowEnd, runErr)
	if m.metrics != nil {
		m.metrics.RecordWorkflowCompletion(workflowID, time.Since(start), runErr != nil)
	}

	return run.results.snapshot(), runErr
}

func (r *runState) emitWorkflow(ctx context.Context, eventType telemetry.EventType, err error) {
	if len(r.observers) == 0 {
		return
	}
	status := telemetry.StatusSuccess
	if err != nil {
		status = telemetry.StatusFailure
	}
	event := telemetry.Event{
		Type:        eventType,
		ExecutionID: r.executionID,
		WorkflowID:  r.workflowID,
		Status:      status,
		Error:       err,
		Timestamp:   time.Now(),
	}
	for _, o := range r.observers {
		o.OnEvent(ctx, event)
	}
}

// runRepeaterLoop re-executes the non-repeater subset of the workflow
// repeatedly (spec §4.5.6): count==0 means infinite, bounded only by
// MaxIterations as a safety net, cancellation, or a __stop_execution
// result.
func (m *Manager) runRepeaterLoop(ctx context.Context, run *runState, g *graph.Graph, scope []string, repeaterNode *workflow.Node) error {
	interval := time.Duration(repeaterNode.ConfigInt("interval", 0)) * time.Millisecond
	count := repeaterNode.ConfigInt("count", 0)

	maxCycles := count
	if maxCycles == 0 {
		maxCycles = run.cfg.MaxIterations
	}

	for cycle := 0; maxCycles == 0 || cycle < maxCycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		run.results = newResultStore(nil)
		stopped, err := m.scheduleReadySets(ctx, run, g, scope, "")
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}

		if count == 0 && cycle+1 >= maxCycles {
			run.logger.Warnf("repeater reached safety cap of %d iterations without __stop_execution", maxCycles)
			return fmt.Errorf("%w: repeater", ErrMaxIterationsExceeded)
		}

		last := count > 0 && cycle == count-1
		if !last && interval > 0 {
			if err := sleepCancellable(ctx, interval); err != nil {
				return err
			}
		}
	}
	return nil
}

func findRepeaterNode(nodes []workflow.Node) *workflow.Node {
	for i := range nodes {
		if nodes[i].Type == repeaterNodeType {
			return &nodes[i]
		}
	}
	return nil
}

func nodeIDs(nodes []workflow.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

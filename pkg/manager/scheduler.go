package manager

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sypnex/flowrunner/pkg/graph"
	"github.com/sypnex/flowrunner/pkg/telemetry"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// scheduleReadySets runs ready-set scheduling (spec §4.5.3) over exactly the
// node ids in scope, using g for connection lookups and results as both the
// seed snapshot and the output sink. It returns early, with stopped=true,
// the first time a node's result carries a truthy __stop_execution.
func (m *Manager) scheduleReadySets(ctx context.Context, run *runState, g *graph.Graph, scope []string, parentForEachID string) (stopped bool, err error) {
	remaining := make(map[string]bool, len(scope))
	for _, id := range scope {
		remaining[id] = true
	}

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		ready := make([]string, 0)
		for id := range remaining {
			if isReady(g, id, run.results) {
				ready = append(ready, id)
			}
		}

		if len(ready) == 0 {
			run.logger.Warnf("unreachable nodes, halting scheduler: %v", keysOf(remaining))
			return false, fmt.Errorf("%w: %v", ErrUnreachableNodes, keysOf(remaining))
		}

		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(run.cfg.WorkerPoolSize)

		expansions := make(chan forEachTask, len(ready))
		stopSignals := make(chan bool, len(ready))

		for _, id := range ready {
			id := id
			node := g.GetNode(id)
			if node == nil {
				continue
			}
			group.Go(func() error {
				result, execErr := m.executeNode(gctx, run, node, parentForEachID)
				if execErr != nil {
					return execErr
				}
				run.results.set(id, result)

				if isForEachControl(result) {
					expansions <- forEachTask{nodeID: id, result: result}
				}
				if isStopExecution(result) {
					stopSignals <- true
				}
				return nil
			})
		}

		if waitErr := group.Wait(); waitErr != nil {
			return false, waitErr
		}
		close(expansions)
		close(stopSignals)

		for _, id := range ready {
			delete(remaining, id)
		}

		for task := range expansions {
			downstream := g.DownstreamOf(task.nodeID)
			scoped := make([]string, 0, len(downstream))
			for id := range downstream {
				if remaining[id] {
					scoped = append(scoped, id)
					delete(remaining, id)
				}
			}
			if err := m.runForEach(ctx, run, g, task.nodeID, task.result, scoped, parentForEachID); err != nil {
				return false, err
			}
		}

		for range stopSignals {
			return true, nil
		}
	}

	return false, nil
}

type forEachTask struct {
	nodeID string
	result workflow.Result
}

// executeNode assembles nodeID's input, dispatches it to the registry, and
// records the outcome on every configured observer and the metrics
// recorder. A node whose required ports aren't all satisfied never reaches
// the registry; it fails locally with a descriptive error result (spec
// §4.5.4).
func (m *Manager) executeNode(ctx context.Context, run *runState, node *workflow.Node, parentForEachID string) (workflow.Result, error) {
	if err := run.bumpExecutionCount(); err != nil {
		return nil, err
	}

	input, missing := buildInput(run.rewiredGraph, node.ID, run.results)

	run.emit(ctx, telemetry.EventNodeStart, node, nil)

	if len(missing) > 0 {
		result := workflow.Result{"error": missingInputsError(missing).Error()}
		run.emit(ctx, telemetry.EventNodeFailure, node, missingInputsError(missing))
		run.recordNode(node.Type, result, 0)
		run.nodeLogger(node).Warnf("missing required input ports: %v", missing)
		return result, nil
	}

	started := time.Now()
	result, err := m.registry.Execute(ctx, node, input, run.results.snapshot(), parentForEachID)
	elapsed := time.Since(started)
	if err != nil {
		run.emit(ctx, telemetry.EventNodeFailure, node, err)
		run.recordNode(node.Type, workflow.Result{"error": err.Error()}, elapsed)
		run.nodeLogger(node).WithError(err).Warn("node execution failed")
		return workflow.Result{"error": err.Error()}, nil
	}
	if result == nil {
		result = workflow.Result{}
	}

	if _, failed := result["error"]; failed {
		run.emit(ctx, telemetry.EventNodeFailure, node, fmt.Errorf("%v", result["error"]))
	} else {
		run.emit(ctx, telemetry.EventNodeSuccess, node, nil)
	}
	run.recordNode(node.Type, result, elapsed)

	return result, nil
}

func isForEachControl(result workflow.Result) bool {
	v, ok := result["for_each_control"]
	return ok && v == true
}

func isStopExecution(result workflow.Result) bool {
	v, ok := result["__stop_execution"]
	return ok && v == true
}

func keysOf(m map[string]bool) []string {
	ids := make([]string, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	return ids
}

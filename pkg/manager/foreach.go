package manager

import (
	"context"
	"time"

	"github.com/sypnex/flowrunner/pkg/graph"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// runForEach drives one for_each node's loop-expansion (spec §4.5.5). scope
// is the transitive downstream set already removed from the outer
// scheduler's remaining queue.
func (m *Manager) runForEach(ctx context.Context, run *runState, g *graph.Graph, nodeID string, control workflow.Result, scope []string, outerParentID string) error {
	arrayData, _ := control["array_data"].([]any)
	stopOnError, _ := control["stop_on_error"].(bool)
	iterationDelayMs, _ := control["iteration_delay"].(int)

	total := len(arrayData)
	if run.cfg.MaxIterations > 0 && total > run.cfg.MaxIterations {
		run.logger.WithNodeID(nodeID).Warnf("for_each requested %d iterations, capping at %d", total, run.cfg.MaxIterations)
		total = run.cfg.MaxIterations
	}

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if run.metrics != nil {
			run.metrics.RecordForEachIteration(nodeID)
		}

		item := arrayData[i]
		run.results.set(nodeID, workflow.Result{
			"current_item":  item,
			"current_index": i,
			"completed":     false,
		})

		iterationScope := newResultStore(run.results.snapshot())
		iterationRun := run.withIteration(nodeID, i)

		stopped, err := m.scheduleReadySetsOver(ctx, iterationRun, g, scope, nodeID, iterationScope)
		if err != nil {
			return err
		}

		hadError := false
		for _, id := range scope {
			if result, ok := iterationScope.get(id); ok {
				tagged := tagForEachIteration(result, nodeID, i, item)
				run.results.set(id, tagged)
				if _, failed := tagged["error"]; failed {
					hadError = true
				}
			}
		}

		if stopped {
			break
		}
		if hadError && stopOnError {
			break
		}

		if iterationDelayMs > 0 && i < total-1 {
			if err := sleepCancellable(ctx, time.Duration(iterationDelayMs)*time.Millisecond); err != nil {
				return err
			}
		}
	}

	run.results.set(nodeID, workflow.Result{
		"current_item":  nil,
		"current_index": total,
		"completed":     true,
	})
	return nil
}

// scheduleReadySetsOver runs the ready-set scheduler for one for_each
// iteration against an isolated result overlay (snapshot-plus-overlay per
// spec §9) so concurrent iterations never contaminate each other's state,
// then folds the overlay back through run.results via the caller.
func (m *Manager) scheduleReadySetsOver(ctx context.Context, run *runState, g *graph.Graph, scope []string, parentForEachID string, overlay *resultStore) (bool, error) {
	iterationRun := run.withResults(overlay)
	return m.scheduleReadySets(ctx, iterationRun, g, scope, parentForEachID)
}

func tagForEachIteration(result workflow.Result, nodeID string, index int, item any) workflow.Result {
	tagged := make(workflow.Result, len(result)+1)
	for k, v := range result {
		tagged[k] = v
	}
	tagged["for_each_iteration"] = map[string]any{
		"index":         index,
		"item":          item,
		"for_each_node": nodeID,
	}
	return tagged
}

func sleepCancellable(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

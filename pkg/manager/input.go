package manager

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/graph"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// resultStore is a concurrency-safe map from node id to its most recent
// result, shared across a ready-set's concurrent workers.
type resultStore struct {
	mu   sync.RWMutex
	data map[string]workflow.Result
}

func newResultStore(seed map[string]workflow.Result) *resultStore {
	data := make(map[string]workflow.Result, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	return &resultStore{data: data}
}

func (s *resultStore) get(nodeID string) (workflow.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[nodeID]
	return v, ok
}

func (s *resultStore) set(nodeID string, result workflow.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[nodeID] = result
}

func (s *resultStore) snapshot() map[string]workflow.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]workflow.Result, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// isReady reports whether nodeID has, for every required input port, at
// least one completed source on the rewired graph (spec §4.5.3).
func isReady(g *graph.Graph, nodeID string, results *resultStore) bool {
	byPort := map[string][]workflow.Connection{}
	for _, c := range g.GetNodeInputConnections(nodeID) {
		byPort[c.To.PortName] = append(byPort[c.To.PortName], c)
	}
	for _, conns := range byPort {
		satisfied := false
		for _, c := range conns {
			if _, ok := results.get(c.From.NodeID); ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// buildInput assembles the port->value mapping for nodeID from its incoming
// rewired connections (spec §4.5.4). Connections are applied in their
// authored order so multi-fan-in at one port resolves last-write-wins,
// tie-broken by that order (Open Question 1).
func buildInput(g *graph.Graph, nodeID string, results *resultStore) (executor.InputData, []string) {
	input := executor.InputData{}
	var missing []string

	byPort := map[string][]workflow.Connection{}
	var order []string
	for _, c := range g.GetNodeInputConnections(nodeID) {
		if _, seen := byPort[c.To.PortName]; !seen {
			order = append(order, c.To.PortName)
		}
		byPort[c.To.PortName] = append(byPort[c.To.PortName], c)
	}
	sort.Strings(order)

	for _, port := range order {
		var value any
		var found bool
		for _, c := range byPort[port] {
			source, ok := results.get(c.From.NodeID)
			if !ok {
				continue
			}
			if v, ok := datautil.ResolvePort(source, c.From.PortName); ok {
				value, found = v, true
			}
		}
		if found {
			input[port] = value
		} else {
			missing = append(missing, port)
		}
	}

	return input, missing
}

func missingInputsError(ports []string) error {
	return fmt.Errorf("missing required inputs on ports: %v", ports)
}

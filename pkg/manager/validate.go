package manager

import (
	"github.com/sypnex/flowrunner/pkg/graph"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// validateGraph runs the bootstrap-time checks the spec requires before a
// workflow may execute (spec §9 "Graph cycles & fan-in", Open Question 4):
// no cycles among executable nodes, and no repeater reachable downstream of
// a for_each.
func validateGraph(nodes []workflow.Node, connections []workflow.Connection, excluded map[string]bool) error {
	executable := make([]workflow.Node, 0, len(nodes))
	for _, n := range nodes {
		if !excluded[n.ID] {
			executable = append(executable, n)
		}
	}

	rewired := graph.Rewire(connections, excluded)
	if err := graph.New(executable, rewired).DetectCycles(); err != nil {
		return err
	}

	raw := graph.New(nodes, connections)
	for _, n := range nodes {
		if n.Type != "for_each" {
			continue
		}
		for downstream := range raw.DownstreamOf(n.ID) {
			target := raw.GetNode(downstream)
			if target != nil && target.Type == repeaterNodeType {
				return ErrRepeaterInsideForEach
			}
		}
	}
	return nil
}

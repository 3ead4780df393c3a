package graph

import (
	"testing"

	"github.com/sypnex/flowrunner/pkg/workflow"
)

func nodes(ids ...string) []workflow.Node {
	out := make([]workflow.Node, len(ids))
	for i, id := range ids {
		out[i] = workflow.Node{ID: id, Type: "noop"}
	}
	return out
}

func conn(fromNode, fromPort, toNode, toPort string) workflow.Connection {
	return workflow.Connection{
		From: workflow.Endpoint{NodeID: fromNode, PortName: fromPort},
		To:   workflow.Endpoint{NodeID: toNode, PortName: toPort},
	}
}

func TestTopologicalSortLinear(t *testing.T) {
	g := New(nodes("a", "b", "c"), []workflow.Connection{
		conn("a", "out", "b", "in"),
		conn("b", "out", "c", "in"),
	})

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort: %v", err)
	}
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, idx := range want {
		if order[idx] != id {
			t.Errorf("order = %v, want %s at index %d", order, id, idx)
		}
	}
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	g := New(nodes("a", "b"), []workflow.Connection{
		conn("a", "out", "b", "in"),
		conn("b", "out", "a", "in"),
	})
	if _, err := g.TopologicalSort(); err != ErrGraphHasCycles {
		t.Fatalf("expected ErrGraphHasCycles, got %v", err)
	}
}

func TestTopologicalSortEmptyGraph(t *testing.T) {
	g := New(nil, nil)
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestGetTerminalNodes(t *testing.T) {
	g := New(nodes("a", "b", "c"), []workflow.Connection{
		conn("a", "out", "b", "in"),
		conn("a", "out", "c", "in"),
	})
	terminal := g.GetTerminalNodes()
	got := map[string]bool{}
	for _, id := range terminal {
		got[id] = true
	}
	if !got["b"] || !got["c"] || got["a"] {
		t.Errorf("GetTerminalNodes() = %v, want [b c]", terminal)
	}
}

func TestDownstreamOf(t *testing.T) {
	g := New(nodes("a", "b", "c", "d"), []workflow.Connection{
		conn("a", "out", "b", "in"),
		conn("b", "out", "c", "in"),
		conn("a", "out", "d", "in"),
	})
	down := g.DownstreamOf("a")
	for _, id := range []string{"b", "c", "d"} {
		if !down[id] {
			t.Errorf("expected %s to be downstream of a", id)
		}
	}
}

func TestRewireDropsEdgesIntoExcludedNodes(t *testing.T) {
	conns := []workflow.Connection{conn("a", "out", "f", "in")}
	excluded := map[string]bool{"f": true}
	rewired := Rewire(conns, excluded)
	if len(rewired) != 0 {
		t.Errorf("expected edge into excluded node to be dropped, got %v", rewired)
	}
}

func TestRewireSkipsThroughFrontendOnlyNode(t *testing.T) {
	// A -> F(frontend_only) -> B
	conns := []workflow.Connection{
		conn("a", "aout", "f", "fin"),
		conn("f", "fout", "b", "bin"),
	}
	excluded := map[string]bool{"f": true}

	rewired := Rewire(conns, excluded)
	if len(rewired) != 1 {
		t.Fatalf("expected exactly 1 rewired connection, got %d: %v", len(rewired), rewired)
	}
	c := rewired[0]
	if c.From.NodeID != "a" || c.To.NodeID != "b" {
		t.Errorf("expected a->b, got %s->%s", c.From.NodeID, c.To.NodeID)
	}
}

func TestRewireDropsWhenNoExecutableAncestor(t *testing.T) {
	// F1 -> F2 -> B, both frontend-only, no real source
	conns := []workflow.Connection{
		conn("f1", "out", "f2", "in"),
		conn("f2", "out", "b", "in"),
	}
	excluded := map[string]bool{"f1": true, "f2": true}
	rewired := Rewire(conns, excluded)
	if len(rewired) != 0 {
		t.Errorf("expected no rewired connections, got %v", rewired)
	}
}

// Package graph provides DAG (Directed Acyclic Graph) operations over a
// workflow's node/connection structure: topological sorting, cycle
// detection, traversal, and rewiring around excluded (frontend-only or
// repeater) nodes.
package graph

import (
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// Graph represents a workflow graph with nodes and connections.
type Graph struct {
	nodes       []workflow.Node
	connections []workflow.Connection
}

// New creates a new Graph from nodes and connections.
func New(nodes []workflow.Node, connections []workflow.Connection) *Graph {
	return &Graph{nodes: nodes, connections: connections}
}

// TopologicalSort performs topological sorting on the graph using Kahn's
// algorithm. This determines a valid execution order for nodes in a
// directed acyclic graph.
//
// Algorithm:
//  1. Calculate in-degree (number of incoming connections) for each node.
//  2. Start with nodes that have no dependencies (in-degree = 0).
//  3. Process nodes and reduce in-degree of their neighbors.
//  4. If all nodes processed, we have a valid execution order.
//  5. If nodes remain, there's a cycle in the graph.
func (g *Graph) TopologicalSort() ([]string, error) {
	numNodes := len(g.nodes)
	if numNodes == 0 {
		return []string{}, nil
	}

	inDegree := make(map[string]int, numNodes)
	adjacency := make(map[string][]string, numNodes)

	for i := range g.nodes {
		inDegree[g.nodes[i].ID] = 0
	}

	for i := range g.connections {
		c := &g.connections[i]
		adjacency[c.From.NodeID] = append(adjacency[c.From.NodeID], c.To.NodeID)
		inDegree[c.To.NodeID]++
	}

	orphans := make([]string, 0, numNodes)
	for nodeID, degree := range inDegree {
		if degree == 0 {
			orphans = append(orphans, nodeID)
		}
	}
	insertionSort(orphans)

	queue := make([]string, numNodes)
	queueStart, queueEnd := 0, len(orphans)
	copy(queue, orphans)

	order := make([]string, 0, numNodes)

	for queueStart < queueEnd {
		current := queue[queueStart]
		queueStart++
		order = append(order, current)

		for _, neighbor := range adjacency[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue[queueEnd] = neighbor
				queueEnd++
			}
		}
	}

	if len(order) != numNodes {
		return nil, ErrGraphHasCycles
	}
	return order, nil
}

// insertionSort sorts a slice of strings in place. Faster than the standard
// library sort for the small orphan sets typical of a workflow graph.
func insertionSort(arr []string) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

// GetNode retrieves a node by its ID.
func (g *Graph) GetNode(nodeID string) *workflow.Node {
	for i := range g.nodes {
		if g.nodes[i].ID == nodeID {
			return &g.nodes[i]
		}
	}
	return nil
}

// GetNodeInputConnections returns all connections where the given node is the target.
func (g *Graph) GetNodeInputConnections(nodeID string) []workflow.Connection {
	var conns []workflow.Connection
	for _, c := range g.connections {
		if c.To.NodeID == nodeID {
			conns = append(conns, c)
		}
	}
	return conns
}

// GetNodeOutputConnections returns all connections where the given node is the source.
func (g *Graph) GetNodeOutputConnections(nodeID string) []workflow.Connection {
	var conns []workflow.Connection
	for _, c := range g.connections {
		if c.From.NodeID == nodeID {
			conns = append(conns, c)
		}
	}
	return conns
}

// GetTerminalNodes returns all nodes that have no outgoing connections.
func (g *Graph) GetTerminalNodes() []string {
	terminal := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		terminal[n.ID] = true
	}
	for _, c := range g.connections {
		terminal[c.From.NodeID] = false
	}

	result := []string{}
	for nodeID, isTerminal := range terminal {
		if isTerminal {
			result = append(result, nodeID)
		}
	}
	return result
}

// DetectCycles reports an error if the graph contains a cycle.
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalSort()
	return err
}

// DownstreamOf returns the transitive set of node ids reachable from start,
// not including start itself, following connections in the forward
// direction. Used by for_each expansion (spec §4.5.5) to find the subgraph
// that must be re-run per iteration.
func (g *Graph) DownstreamOf(start string) map[string]bool {
	visited := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		for _, c := range g.GetNodeOutputConnections(id) {
			if visited[c.To.NodeID] {
				continue
			}
			visited[c.To.NodeID] = true
			walk(c.To.NodeID)
		}
	}
	walk(start)
	return visited
}

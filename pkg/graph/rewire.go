package graph

import "github.com/sypnex/flowrunner/pkg/workflow"

// Rewire drops connections that terminate at an excluded node and redirects
// connections that originate at an excluded node to the nearest executable
// ancestor, walking upstream through the excluded node's own incoming
// connections (spec §4.5.2). A connection whose source chain never reaches
// an executable node is dropped.
//
// excluded identifies nodes removed from the executable set: frontend-only
// node types and repeater loop drivers.
func Rewire(connections []workflow.Connection, excluded map[string]bool) []workflow.Connection {
	byTarget := make(map[string][]workflow.Connection, len(connections))
	for _, c := range connections {
		byTarget[c.To.NodeID] = append(byTarget[c.To.NodeID], c)
	}

	result := make([]workflow.Connection, 0, len(connections))
	for _, c := range connections {
		if excluded[c.To.NodeID] {
			continue
		}
		from := c.From
		if excluded[from.NodeID] {
			resolved, ok := nearestExecutableSource(from, byTarget, excluded, make(map[string]bool))
			if !ok {
				continue
			}
			from = resolved
		}
		rewired := c
		rewired.From = from
		result = append(result, rewired)
	}
	return result
}

// nearestExecutableSource walks upstream from an excluded node's own
// incoming connections until it finds a non-excluded source, returning its
// endpoint (node id and original output port name).
func nearestExecutableSource(from workflow.Endpoint, byTarget map[string][]workflow.Connection, excluded map[string]bool, visited map[string]bool) (workflow.Endpoint, bool) {
	if !excluded[from.NodeID] {
		return from, true
	}
	if visited[from.NodeID] {
		return workflow.Endpoint{}, false
	}
	visited[from.NodeID] = true

	for _, in := range byTarget[from.NodeID] {
		if resolved, ok := nearestExecutableSource(in.From, byTarget, excluded, visited); ok {
			return resolved, true
		}
	}
	return workflow.Endpoint{}, false
}

package graph

import "errors"

// Sentinel errors for graph operations.
var (
	ErrGraphHasCycles  = errors.New("workflow contains cycles (circular dependencies)")
	ErrNodeNotFound    = errors.New("node not found in graph")
	ErrUnreachableNode = errors.New("node has no satisfiable incoming connections")
)

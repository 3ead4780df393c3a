// Package manager implements the Execution Manager (spec §4.5): it loads
// node definitions, classifies and rewires the graph around excluded nodes,
// drives ready-set scheduling with a bounded worker pool, assembles per-node
// inputs from already-produced results, and handles the two control-flow
// expansions (for_each, repeater) along with the __stop_execution signal.
package manager

// Package executor defines the NodeExecutor contract and the Registry that
// dispatches a node to its executor by type. Built-in executors live in
// pkg/executor/builtin; custom executors can be registered the same way.
package executor

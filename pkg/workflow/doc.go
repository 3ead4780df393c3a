// Package workflow defines the data model shared by the graph, executor,
// and manager packages: Workflow, Node, Connection, NodeDefinition, and the
// Result map an executor produces. Parser turns raw JSON (as read from VFS)
// into a validated Workflow.
package workflow

package workflow

import "errors"

// Sentinel errors for workflow parsing and validation.
var (
	ErrEmptyWorkflow           = errors.New("workflow must contain at least one node")
	ErrMissingNodeID           = errors.New("node must have an id")
	ErrMissingNodeType         = errors.New("node must have a type")
	ErrDuplicateNodeID         = errors.New("duplicate node id")
	ErrConnectionUnknownSource = errors.New("connection references non-existent source node")
	ErrConnectionUnknownTarget = errors.New("connection references non-existent target node")
)

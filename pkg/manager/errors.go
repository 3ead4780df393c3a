package manager

import "errors"

// Sentinel errors for workflow bootstrap and execution.
var (
	ErrRepeaterInsideForEach = errors.New("manager: repeater node nested inside a for_each is not supported")
	ErrUnreachableNodes      = errors.New("manager: workflow has unreachable nodes")
	ErrMaxNodeExecutions     = errors.New("manager: maximum node executions exceeded")
	ErrMaxIterationsExceeded = errors.New("manager: maximum iterations exceeded")
)

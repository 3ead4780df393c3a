package executor

import "errors"

// Sentinel errors for executor registration and dispatch.
var (
	ErrAlreadyRegistered    = errors.New("executor already registered for node type")
	ErrNoExecutorRegistered = errors.New("no executor registered for node type")
)

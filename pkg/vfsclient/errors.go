package vfsclient

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by operations that require an existing file
// (download, read) when the VFS reports a non-200 status.
var ErrNotFound = errors.New("vfsclient: file not found")

// ErrUnexpectedStatus wraps a non-2xx response from the VFS service for
// operations where "not found" is not itself a usable outcome (create,
// upload, delete, list).
type ErrUnexpectedStatus struct {
	Op     string
	Status int
	Body   string
}

func (e *ErrUnexpectedStatus) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("vfsclient: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("vfsclient: %s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

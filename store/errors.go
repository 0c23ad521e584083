package store

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the requested item or album does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDocument indicates the library file could not be decoded or
	// violates its invariants (duplicate or empty IDs).
	ErrInvalidDocument = errors.New("invalid library document")
)

package store

import "errors"

// Error taxonomy for store operations. Use errors.Is to classify.
var (
	// ErrUnavailable indicates a transport failure: the store was never
	// reached or the connection dropped mid-operation. Retryable.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrRejected indicates the store received the operation and refused it,
	// e.g. a constraint violation. Not retryable with the same input.
	ErrRejected = errors.New("store: operation rejected")
	// ErrNotFound is returned by Single when no row matches.
	ErrNotFound = errors.New("store: row not found")
	// ErrMultipleRows is returned by Single when more than one row matches.
	ErrMultipleRows = errors.New("store: multiple rows match")
)

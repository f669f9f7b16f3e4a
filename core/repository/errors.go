package repository

import "errors"

// Error taxonomy returned across the repository boundary. Repositories never
// panic on these paths; callers classify with errors.Is and decide
// presentation.
var (
	// ErrUnauthorized is returned when an operation requires a valid session
	// and none exists. It is returned eagerly so "logged out" can never be
	// mistaken for "no data".
	ErrUnauthorized = errors.New("repository: unauthorized")
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("repository: record not found")
	// ErrRemoteUnavailable wraps transport failures. Retryable by reissuing
	// the same operation.
	ErrRemoteUnavailable = errors.New("repository: remote store unavailable")
	// ErrRemoteRejected wraps operations the store received and refused.
	ErrRemoteRejected = errors.New("repository: remote store rejected operation")
)

package session

import "errors"

var (
	// ErrInvalidCredentials is returned when no user matches the identifier
	// or the secret does not match. The two cases are deliberately
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	// ErrMalformedInput is returned when the identifier or secret is missing,
	// or a registration email is not email-shaped.
	ErrMalformedInput = errors.New("session: malformed input")
	// ErrDuplicateIdentity is returned when a registration email or handle is
	// already taken.
	ErrDuplicateIdentity = errors.New("session: identity already exists")
	// ErrNotAuthenticated is returned by Current when there is no live,
	// unexpired session.
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrNoSession is returned by Store implementations when no session is
	// persisted.
	ErrNoSession = errors.New("session: no stored session")
	// ErrSaveSession is returned when persisting a freshly issued session fails.
	ErrSaveSession = errors.New("session: failed to save session")
)

// Package store defines the table-oriented remote data store abstraction the
// rest of the module builds on. A store exposes named tables with row-level
// CRUD and a small predicate language (eq, in, or), column selection,
// ordering, and limits.
//
// The package contains only the contract, its error taxonomy, and an
// in-process Memory implementation used by tests and local development.
// Network-backed implementations live under integration/database.
//
// Basic usage:
//
//	rows, err := client.From("projects").
//		Select("id", "title").
//		Eq("featured", true).
//		Order("created_at", true).
//		Limit(10).
//		Get(ctx)
//
// Errors follow two families: ErrUnavailable for transport failures where
// the store was never reached (retryable by reissuing the call), and
// ErrRejected for operations the store received and refused, such as
// constraint violations (terminal for that input).
package store

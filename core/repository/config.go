package repository

import (
	"context"
	"log/slog"

	"github.com/nopianhadi/adminkit/core/store"
)

// Guard reports whether a valid, unexpired session exists. The session
// manager satisfies this interface.
type Guard interface {
	Authenticated(ctx context.Context) bool
}

// Transform rewrites a row at the repository boundary. Encode transforms run
// on outgoing drafts and patches, Decode transforms on rows coming back from
// the store. Transforms receive a private copy and may mutate it in place.
type Transform func(store.Row) store.Row

// Config declares one resource type: its table, cache resource name,
// protection level, and column transforms. One Config value per type
// replaces a hand-written repository per table.
type Config[T any] struct {
	// Table is the remote store table name.
	Table string
	// Resource is the cache key resource name; defaults to Table.
	Resource string
	// Protected gates reads on an authenticated session. Public-facing
	// resource types leave this false; mutations are gated regardless.
	Protected bool
	// Columns narrows the select list. Defaults to all columns.
	Columns []string
	// Order is the default list ordering. Zero value means store order.
	Order store.Order
	// Encode and Decode carry per-type column transforms, declared once here
	// rather than re-implemented at call sites.
	Encode Transform
	Decode Transform
}

// Option configures a Repository.
type Option func(*settings)

type settings struct {
	log *slog.Logger
}

// WithLogger configures structured logging. Logging is discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// ListOption narrows or orders a List call.
type ListOption func(*listQuery)

type listQuery struct {
	filters []store.Filter
	order   *store.Order
}

// WithFilter adds predicates to the list query. Filters are ANDed.
func WithFilter(filters ...store.Filter) ListOption {
	return func(q *listQuery) {
		q.filters = append(q.filters, filters...)
	}
}

// WithOrder overrides the configured default ordering.
func WithOrder(column string, descending bool) ListOption {
	return func(q *listQuery) {
		q.order = &store.Order{Column: column, Descending: descending}
	}
}

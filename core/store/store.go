package store

import "context"

// Row is a single table row keyed by column name. Values are JSON-compatible.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Op is a predicate operator.
type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
)

// Filter is a single column predicate. Build filters with Eq and In.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq matches rows whose column equals value.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In matches rows whose column equals any of the given values.
func In(column string, values ...any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Order describes result ordering on a single column.
type Order struct {
	Column     string
	Descending bool
}

// Capabilities describes optional store features callers may branch on.
type Capabilities struct {
	// BulkUpdate reports whether a single Update with an In predicate is
	// applied atomically by the store. Callers without this capability must
	// fall back to per-row updates.
	BulkUpdate bool
}

// Query builds and executes an operation against one table. Builder methods
// return the query for chaining; executor methods perform the remote call.
// Filters added with Eq, In, and Or are combined with AND.
type Query interface {
	Select(columns ...string) Query
	Eq(column string, value any) Query
	In(column string, values ...any) Query
	// Or adds a disjunction of the given filters as one AND-ed clause.
	Or(filters ...Filter) Query
	Order(column string, descending bool) Query
	Limit(n int) Query

	// Get returns all matching rows.
	Get(ctx context.Context) ([]Row, error)
	// Single returns exactly one matching row. Zero rows yield ErrNotFound,
	// more than one ErrMultipleRows.
	Single(ctx context.Context) (Row, error)
	// Insert adds rows and returns them as stored (ids and timestamps
	// assigned by the store).
	Insert(ctx context.Context, rows ...Row) ([]Row, error)
	// Update applies patch to all matching rows and returns the updated rows.
	Update(ctx context.Context, patch Row) ([]Row, error)
	// Delete removes all matching rows. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}

// Client is a connection to a remote table store.
type Client interface {
	From(table string) Query
	Capabilities() Capabilities
}

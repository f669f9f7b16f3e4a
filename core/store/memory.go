package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Client implementation backed by maps. It assigns
// row ids and created_at/updated_at timestamps on insert, enforces configured
// unique columns, and supports injected transport failures, which makes it
// suitable for tests and local development.
type Memory struct {
	mu         sync.Mutex
	tables     map[string][]Row
	unique     map[string][]string
	bulkUpdate bool
	failNext   error
	now        func() time.Time
}

// MemoryOption configures a Memory client.
type MemoryOption func(*Memory)

// WithoutBulkUpdate disables the BulkUpdate capability so callers exercise
// their per-row fallback paths.
func WithoutBulkUpdate() MemoryOption {
	return func(m *Memory) {
		m.bulkUpdate = false
	}
}

// WithUniqueColumns declares columns whose values must be unique within the
// table. Violations are rejected with ErrRejected, mirroring a remote
// uniqueness constraint.
func WithUniqueColumns(table string, columns ...string) MemoryOption {
	return func(m *Memory) {
		m.unique[table] = append(m.unique[table], columns...)
	}
}

// WithMemoryClock overrides the timestamp source. Intended for tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an empty in-memory table store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		tables:     make(map[string][]Row),
		unique:     make(map[string][]string),
		bulkUpdate: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Capabilities implements Client.
func (m *Memory) Capabilities() Capabilities {
	return Capabilities{BulkUpdate: m.bulkUpdate}
}

// From implements Client.
func (m *Memory) From(table string) Query {
	return &memQuery{store: m, table: table}
}

// FailNext makes the next executed operation fail with ErrUnavailable,
// optionally joined with cause. Used to simulate transport failures.
func (m *Memory) FailNext(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cause == nil {
		m.failNext = ErrUnavailable
		return
	}
	m.failNext = errors.Join(ErrUnavailable, cause)
}

// Seed inserts rows bypassing uniqueness checks, assigning ids and timestamps
// to rows that lack them. Returns the rows as stored.
func (m *Memory) Seed(table string, rows ...Row) []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		stored := m.prepareInsert(row)
		m.tables[table] = append(m.tables[table], stored)
		out = append(out, stored.Clone())
	}
	return out
}

// Rows returns a snapshot of all rows in the table, in insertion order.
func (m *Memory) Rows(table string) []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Row, 0, len(m.tables[table]))
	for _, row := range m.tables[table] {
		out = append(out, row.Clone())
	}
	return out
}

func (m *Memory) prepareInsert(row Row) Row {
	stored := row.Clone()
	if stored == nil {
		stored = Row{}
	}
	if id, ok := stored["id"].(string); !ok || id == "" {
		stored["id"] = uuid.NewString()
	}
	now := m.now()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = now
	}
	stored["updated_at"] = now
	return stored
}

// takeFailure consumes a pending injected failure. Caller must hold mu.
func (m *Memory) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *Memory) checkUnique(table string, candidate Row, skip func(Row) bool) error {
	for _, column := range m.unique[table] {
		value, ok := candidate[column]
		if !ok {
			continue
		}
		for _, existing := range m.tables[table] {
			if skip != nil && skip(existing) {
				continue
			}
			if valueEqual(existing[column], value) {
				return fmt.Errorf("%w: duplicate %s.%s", ErrRejected, table, column)
			}
		}
	}
	return nil
}

type memQuery struct {
	store    *Memory
	table    string
	columns  []string
	filters  []Filter
	orGroups [][]Filter
	order    *Order
	limit    int
}

func (q *memQuery) Select(columns ...string) Query {
	q.columns = columns
	return q
}

func (q *memQuery) Eq(column string, value any) Query {
	q.filters = append(q.filters, Eq(column, value))
	return q
}

func (q *memQuery) In(column string, values ...any) Query {
	q.filters = append(q.filters, In(column, values...))
	return q
}

func (q *memQuery) Or(filters ...Filter) Query {
	q.orGroups = append(q.orGroups, filters)
	return q
}

func (q *memQuery) Order(column string, descending bool) Query {
	q.order = &Order{Column: column, Descending: descending}
	return q
}

func (q *memQuery) Limit(n int) Query {
	q.limit = n
	return q
}

func (q *memQuery) Get(ctx context.Context) ([]Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	if err := q.store.takeFailure(); err != nil {
		return nil, err
	}
	return q.selectLocked(), nil
}

func (q *memQuery) Single(ctx context.Context) (Row, error) {
	rows, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

func (q *memQuery) Insert(ctx context.Context, rows ...Row) ([]Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	if err := q.store.takeFailure(); err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		stored := q.store.prepareInsert(row)
		if err := q.store.checkUnique(q.table, stored, nil); err != nil {
			return nil, err
		}
		q.store.tables[q.table] = append(q.store.tables[q.table], stored)
		out = append(out, stored.Clone())
	}
	return out, nil
}

func (q *memQuery) Update(ctx context.Context, patch Row) ([]Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	if err := q.store.takeFailure(); err != nil {
		return nil, err
	}

	matched := make(map[int]bool)
	for i, row := range q.store.tables[q.table] {
		if q.matches(row) {
			matched[i] = true
		}
	}

	now := q.store.now()
	out := make([]Row, 0, len(matched))
	for i, row := range q.store.tables[q.table] {
		if !matched[i] {
			continue
		}
		updated := row.Clone()
		for column, value := range patch {
			updated[column] = value
		}
		updated["updated_at"] = now
		if err := q.store.checkUnique(q.table, updated, func(other Row) bool {
			return valueEqual(other["id"], row["id"])
		}); err != nil {
			return nil, err
		}
		q.store.tables[q.table][i] = updated
		out = append(out, updated.Clone())
	}
	return out, nil
}

func (q *memQuery) Delete(ctx context.Context) error {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	if err := q.store.takeFailure(); err != nil {
		return err
	}

	kept := q.store.tables[q.table][:0]
	for _, row := range q.store.tables[q.table] {
		if !q.matches(row) {
			kept = append(kept, row)
		}
	}
	q.store.tables[q.table] = kept
	return nil
}

// selectLocked applies filters, ordering, limit, and projection.
// Caller must hold store.mu.
func (q *memQuery) selectLocked() []Row {
	var rows []Row
	for _, row := range q.store.tables[q.table] {
		if q.matches(row) {
			rows = append(rows, row.Clone())
		}
	}

	if q.order != nil {
		column, descending := q.order.Column, q.order.Descending
		sort.SliceStable(rows, func(i, j int) bool {
			less := valueLess(rows[i][column], rows[j][column])
			if descending {
				return !less && !valueEqual(rows[i][column], rows[j][column])
			}
			return less
		})
	}

	if q.limit > 0 && len(rows) > q.limit {
		rows = rows[:q.limit]
	}

	if len(q.columns) > 0 && !(len(q.columns) == 1 && q.columns[0] == "*") {
		for i, row := range rows {
			projected := make(Row, len(q.columns))
			for _, column := range q.columns {
				if v, ok := row[column]; ok {
					projected[column] = v
				}
			}
			rows[i] = projected
		}
	}
	return rows
}

func (q *memQuery) matches(row Row) bool {
	for _, f := range q.filters {
		if !matchFilter(row, f) {
			return false
		}
	}
	for _, group := range q.orGroups {
		any := false
		for _, f := range group {
			if matchFilter(row, f) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func matchFilter(row Row, f Filter) bool {
	switch f.Op {
	case OpEq:
		return valueEqual(row[f.Column], f.Value)
	case OpIn:
		values, ok := f.Value.([]any)
		if !ok {
			return false
		}
		for _, v := range values {
			if valueEqual(row[f.Column], v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// valueEqual compares values by canonical string form so that ids and
// numbers round-tripped through JSON still match.
func valueEqual(a, b any) bool {
	return canonical(a) == canonical(b)
}

func valueLess(a, b any) bool {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		return fa < fb
	}
	return canonical(a) < canonical(b)
}

func canonical(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%v", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

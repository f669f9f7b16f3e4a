package pg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nopianhadi/adminkit/core/store"
	"github.com/nopianhadi/adminkit/pkg/logger"
)

// Client implements core/store.Client directly against Postgres.
type Client struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger configures structured logging. Logging is discarded by default.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient wraps an established pool.
func NewClient(pool *pgxpool.Pool, opts ...ClientOption) *Client {
	c := &Client{
		pool: pool,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capabilities implements store.Client. A single UPDATE with an id = ANY
// predicate covers multi-row patches.
func (c *Client) Capabilities() store.Capabilities {
	return store.Capabilities{BulkUpdate: true}
}

// From implements store.Client.
func (c *Client) From(table string) store.Query {
	return &query{client: c, table: table}
}

// querier is satisfied by both the pool and a pgx.Tx, so operations follow
// a transaction attached to the context.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (c *Client) querier(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return c.pool
}

type query struct {
	client   *Client
	table    string
	columns  []string
	filters  []store.Filter
	orGroups [][]store.Filter
	order    *store.Order
	limit    int
}

func (q *query) Select(columns ...string) store.Query {
	q.columns = columns
	return q
}

func (q *query) Eq(column string, value any) store.Query {
	q.filters = append(q.filters, store.Eq(column, value))
	return q
}

func (q *query) In(column string, values ...any) store.Query {
	q.filters = append(q.filters, store.In(column, values...))
	return q
}

func (q *query) Or(filters ...store.Filter) store.Query {
	q.orGroups = append(q.orGroups, filters)
	return q
}

func (q *query) Order(column string, descending bool) store.Query {
	q.order = &store.Order{Column: column, Descending: descending}
	return q
}

func (q *query) Limit(n int) store.Query {
	q.limit = n
	return q
}

func (q *query) Get(ctx context.Context) ([]store.Row, error) {
	sql, args := q.selectSQL()
	return q.queryRows(ctx, sql, args)
}

func (q *query) Single(ctx context.Context) (store.Row, error) {
	rows, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, store.ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, store.ErrMultipleRows
	}
}

func (q *query) Insert(ctx context.Context, rows ...store.Row) ([]store.Row, error) {
	out := make([]store.Row, 0, len(rows))
	for _, row := range rows {
		columns := sortedColumns(row)
		placeholders := make([]string, len(columns))
		args := make([]any, len(columns))
		quoted := make([]string, len(columns))
		for i, column := range columns {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = row[column]
			quoted[i] = pgx.Identifier{column}.Sanitize()
		}

		sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			pgx.Identifier{q.table}.Sanitize(),
			strings.Join(quoted, ", "),
			strings.Join(placeholders, ", "))

		inserted, err := q.queryRows(ctx, sql, args)
		if err != nil {
			return nil, err
		}
		out = append(out, inserted...)
	}
	return out, nil
}

func (q *query) Update(ctx context.Context, patch store.Row) ([]store.Row, error) {
	if len(patch) == 0 {
		return nil, nil
	}

	columns := sortedColumns(patch)
	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns))
	for i, column := range columns {
		args = append(args, patch[column])
		assignments[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), len(args))
	}

	where, args := q.whereSQL(args)
	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *",
		pgx.Identifier{q.table}.Sanitize(),
		strings.Join(assignments, ", "),
		where)

	return q.queryRows(ctx, sql, args)
}

func (q *query) Delete(ctx context.Context) error {
	where, args := q.whereSQL(nil)
	sql := fmt.Sprintf("DELETE FROM %s%s", pgx.Identifier{q.table}.Sanitize(), where)

	if _, err := q.client.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return q.mapErr(err)
	}
	return nil
}

func (q *query) selectSQL() (string, []any) {
	projection := "*"
	if len(q.columns) > 0 {
		quoted := make([]string, len(q.columns))
		for i, column := range q.columns {
			quoted[i] = pgx.Identifier{column}.Sanitize()
		}
		projection = strings.Join(quoted, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", projection, pgx.Identifier{q.table}.Sanitize())

	where, args := q.whereSQL(nil)
	b.WriteString(where)

	if q.order != nil {
		direction := "ASC"
		if q.order.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", pgx.Identifier{q.order.Column}.Sanitize(), direction)
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	return b.String(), args
}

// whereSQL renders the accumulated filters, appending operands to args and
// numbering placeholders after the ones already taken.
func (q *query) whereSQL(args []any) (string, []any) {
	var clauses []string
	for _, f := range q.filters {
		var clause string
		clause, args = filterSQL(f, args)
		clauses = append(clauses, clause)
	}
	for _, group := range q.orGroups {
		parts := make([]string, 0, len(group))
		for _, f := range group {
			var clause string
			clause, args = filterSQL(f, args)
			parts = append(parts, clause)
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func filterSQL(f store.Filter, args []any) (string, []any) {
	column := pgx.Identifier{f.Column}.Sanitize()
	switch f.Op {
	case store.OpIn:
		values, _ := f.Value.([]any)
		args = append(args, values)
		return fmt.Sprintf("%s = ANY($%d)", column, len(args)), args
	default:
		args = append(args, f.Value)
		return fmt.Sprintf("%s = $%d", column, len(args)), args
	}
}

func (q *query) queryRows(ctx context.Context, sql string, args []any) ([]store.Row, error) {
	rows, err := q.client.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, q.mapErr(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []store.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, q.mapErr(err)
		}
		row := make(store.Row, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, q.mapErr(err)
	}
	return out, nil
}

// mapErr translates pgx errors onto the store taxonomy: SQL-level rejections
// (constraint violations and friends) are ErrRejected, everything else is a
// connectivity problem.
func (q *query) mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		q.client.log.Debug("statement rejected",
			logger.Component("pg"),
			logger.Table(q.table),
			slog.String("sqlstate", pgErr.Code))
		return errors.Join(store.ErrRejected, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Join(store.ErrNotFound, err)
	}
	return errors.Join(store.ErrUnavailable, err)
}

func sortedColumns(row store.Row) []string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

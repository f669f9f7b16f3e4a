package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/nopianhadi/adminkit/core/cache"
	"github.com/nopianhadi/adminkit/core/store"
	"github.com/nopianhadi/adminkit/pkg/logger"
)

// Repository is the generic CRUD surface for one resource type. Reads go
// through the resource cache; mutations write to the store and invalidate
// the affected cache keys once, after the write succeeds.
type Repository[T any] struct {
	cfg    Config[T]
	client store.Client
	cache  *cache.Cache
	guard  Guard
	log    *slog.Logger
}

// New creates a repository for one resource type. A nil guard disables
// session gating entirely; pass the session manager in normal operation.
func New[T any](client store.Client, c *cache.Cache, guard Guard, cfg Config[T], opts ...Option) *Repository[T] {
	if cfg.Resource == "" {
		cfg.Resource = cfg.Table
	}
	s := settings{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&s)
	}
	return &Repository[T]{
		cfg:    cfg,
		client: client,
		cache:  c,
		guard:  guard,
		log:    s.log,
	}
}

// Resource returns the cache resource name for this repository.
func (r *Repository[T]) Resource() string {
	return r.cfg.Resource
}

// List returns all records matching the given options, served through the
// cache. Protected resource types require a valid session.
func (r *Repository[T]) List(ctx context.Context, opts ...ListOption) ([]T, error) {
	if r.cfg.Protected && !r.authenticated(ctx) {
		return nil, ErrUnauthorized
	}

	q := r.buildListQuery(opts)
	entry := r.cache.Wait(ctx, r.listKey(q), r.listFetcher(q))
	if entry.Err != nil {
		return nil, r.mapErr(entry.Err)
	}
	records, _ := entry.Data.([]T)
	return records, nil
}

// Get returns the record with the given id, served through the cache.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if r.cfg.Protected && !r.authenticated(ctx) {
		return zero, ErrUnauthorized
	}

	key := cache.DetailKey(r.cfg.Resource, id)
	entry := r.cache.Wait(ctx, key, func(ctx context.Context) (any, error) {
		row, err := r.baseQuery().Eq("id", id).Single(ctx)
		if err != nil {
			return nil, err
		}
		return r.decode(row)
	})
	if entry.Err != nil {
		return zero, r.mapErr(entry.Err)
	}
	record, ok := entry.Data.(T)
	if !ok {
		return zero, fmt.Errorf("repository: unexpected cached type for %s", key)
	}
	return record, nil
}

// Create inserts a draft and returns the stored record with its assigned id
// and timestamps. The resource's list keys are invalidated on success.
func (r *Repository[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if !r.authenticated(ctx) {
		return zero, ErrUnauthorized
	}

	row, err := encodeRecord(draft)
	if err != nil {
		return zero, err
	}
	if r.cfg.Encode != nil {
		row = r.cfg.Encode(row)
	}

	rows, err := r.client.From(r.cfg.Table).Insert(ctx, row)
	if err != nil {
		return zero, r.mapErr(err)
	}
	if len(rows) == 0 {
		return zero, errors.Join(ErrRemoteRejected, errors.New("insert returned no rows"))
	}
	record, err := r.decode(rows[0])
	if err != nil {
		return zero, err
	}

	r.invalidate(nil)
	r.log.Debug("record created",
		logger.Component("repository"), logger.Resource(r.cfg.Resource))
	return record, nil
}

// Update applies patch to the record with the given id. Both the list keys
// and the record's detail key are invalidated on success. An id that does
// not resolve yields ErrNotFound.
func (r *Repository[T]) Update(ctx context.Context, id string, patch store.Row) (T, error) {
	var zero T
	if !r.authenticated(ctx) {
		return zero, ErrUnauthorized
	}

	row := patch.Clone()
	if r.cfg.Encode != nil {
		row = r.cfg.Encode(row)
	}

	rows, err := r.client.From(r.cfg.Table).Eq("id", id).Update(ctx, row)
	if err != nil {
		return zero, r.mapErr(err)
	}
	if len(rows) == 0 {
		return zero, ErrNotFound
	}
	record, err := r.decode(rows[0])
	if err != nil {
		return zero, err
	}

	r.invalidate([]string{id})
	return record, nil
}

// Delete removes the record with the given id and invalidates the list keys.
// Deleting an id that does not exist is a success, not an error.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if !r.authenticated(ctx) {
		return ErrUnauthorized
	}

	if err := r.client.From(r.cfg.Table).Eq("id", id).Delete(ctx); err != nil {
		return r.mapErr(err)
	}

	r.invalidate([]string{id})
	return nil
}

// UpdateMany applies the same patch to every id. When the store supports
// atomic multi-row updates a single in-predicated call is issued; otherwise
// the patch is applied id by id. Either way the cache is invalidated exactly
// once at the end, not once per id.
func (r *Repository[T]) UpdateMany(ctx context.Context, ids []string, patch store.Row) error {
	if !r.authenticated(ctx) {
		return ErrUnauthorized
	}
	if len(ids) == 0 {
		return nil
	}

	row := patch.Clone()
	if r.cfg.Encode != nil {
		row = r.cfg.Encode(row)
	}

	if r.client.Capabilities().BulkUpdate {
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		if _, err := r.client.From(r.cfg.Table).In("id", values...).Update(ctx, row); err != nil {
			return r.mapErr(err)
		}
	} else {
		for _, id := range ids {
			if _, err := r.client.From(r.cfg.Table).Eq("id", id).Update(ctx, row); err != nil {
				return r.mapErr(err)
			}
		}
	}

	r.invalidate(ids)
	r.log.Debug("bulk update applied",
		logger.Component("repository"),
		logger.Resource(r.cfg.Resource),
		logger.Count(len(ids)))
	return nil
}

func (r *Repository[T]) authenticated(ctx context.Context) bool {
	return r.guard == nil || r.guard.Authenticated(ctx)
}

// invalidate marks this resource's list keys, plus the detail keys of the
// given ids, stale in one cycle.
func (r *Repository[T]) invalidate(ids []string) {
	details := make(map[cache.Key]bool, len(ids))
	for _, id := range ids {
		details[cache.DetailKey(r.cfg.Resource, id)] = true
	}
	r.cache.InvalidateFunc(func(k cache.Key) bool {
		if k.Resource != r.cfg.Resource {
			return false
		}
		return k.IsList() || details[k]
	})
}

func (r *Repository[T]) buildListQuery(opts []ListOption) listQuery {
	var q listQuery
	for _, opt := range opts {
		opt(&q)
	}
	if q.order == nil && r.cfg.Order.Column != "" {
		order := r.cfg.Order
		q.order = &order
	}
	return q
}

// listKey canonicalizes the query into a structural cache key: filters are
// sorted so call-site ordering does not split the cache.
func (r *Repository[T]) listKey(q listQuery) cache.Key {
	var parts []string
	for _, f := range q.filters {
		parts = append(parts, fmt.Sprintf("%s=%s.%v", f.Column, f.Op, f.Value))
	}
	sort.Strings(parts)
	if q.order != nil {
		direction := "asc"
		if q.order.Descending {
			direction = "desc"
		}
		parts = append(parts, fmt.Sprintf("order=%s.%s", q.order.Column, direction))
	}
	return cache.ListKey(r.cfg.Resource, strings.Join(parts, "&"))
}

func (r *Repository[T]) listFetcher(q listQuery) cache.Fetcher {
	return func(ctx context.Context) (any, error) {
		query := r.baseQuery()
		for _, f := range q.filters {
			query = applyFilter(query, f)
		}
		if q.order != nil {
			query = query.Order(q.order.Column, q.order.Descending)
		}
		rows, err := query.Get(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]T, 0, len(rows))
		for _, row := range rows {
			record, err := r.decode(row)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		return records, nil
	}
}

func (r *Repository[T]) baseQuery() store.Query {
	query := r.client.From(r.cfg.Table)
	if len(r.cfg.Columns) > 0 {
		query = query.Select(r.cfg.Columns...)
	}
	return query
}

func applyFilter(query store.Query, f store.Filter) store.Query {
	switch f.Op {
	case store.OpIn:
		values, _ := f.Value.([]any)
		return query.In(f.Column, values...)
	default:
		return query.Eq(f.Column, f.Value)
	}
}

func (r *Repository[T]) decode(row store.Row) (T, error) {
	var record T
	if r.cfg.Decode != nil {
		row = r.cfg.Decode(row.Clone())
	}
	data, err := json.Marshal(row)
	if err != nil {
		return record, fmt.Errorf("repository: encode %s row: %w", r.cfg.Table, err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("repository: decode %s row: %w", r.cfg.Table, err)
	}
	return record, nil
}

func encodeRecord[T any](record T) (store.Row, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("repository: encode record: %w", err)
	}
	var row store.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("repository: encode record: %w", err)
	}
	return row, nil
}

// mapErr translates store errors into the repository taxonomy, preserving
// the cause for logging.
func (r *Repository[T]) mapErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, store.ErrUnavailable):
		return errors.Join(ErrRemoteUnavailable, err)
	case errors.Is(err, store.ErrRejected), errors.Is(err, store.ErrMultipleRows):
		return errors.Join(ErrRemoteRejected, err)
	default:
		return err
	}
}

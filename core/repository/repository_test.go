package repository_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopianhadi/adminkit/core/cache"
	"github.com/nopianhadi/adminkit/core/repository"
	"github.com/nopianhadi/adminkit/core/store"
)

type project struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Featured  bool      `json:"featured,omitempty"`
	Tools     []string  `json:"tools,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type staticGuard struct {
	ok bool
}

func (g *staticGuard) Authenticated(ctx context.Context) bool {
	return g.ok
}

func newProjectRepo(client store.Client, guard repository.Guard, cfg ...repository.Config[project]) (*repository.Repository[project], *cache.Cache) {
	c := cache.New()
	config := repository.Config[project]{Table: "projects", Resource: "project"}
	if len(cfg) > 0 {
		config = cfg[0]
	}
	return repository.New(client, c, guard, config), c
}

// countingClient records executed store calls per operation kind.

type countingClient struct {
	store.Client
	gets    atomic.Int32
	updates atomic.Int32
}

func (c *countingClient) From(table string) store.Query {
	return &countingQuery{Query: c.Client.From(table), counter: c}
}

type countingQuery struct {
	store.Query
	counter *countingClient
}

func (q *countingQuery) Select(columns ...string) store.Query {
	q.Query = q.Query.Select(columns...)
	return q
}

func (q *countingQuery) Eq(column string, value any) store.Query {
	q.Query = q.Query.Eq(column, value)
	return q
}

func (q *countingQuery) In(column string, values ...any) store.Query {
	q.Query = q.Query.In(column, values...)
	return q
}

func (q *countingQuery) Or(filters ...store.Filter) store.Query {
	q.Query = q.Query.Or(filters...)
	return q
}

func (q *countingQuery) Order(column string, descending bool) store.Query {
	q.Query = q.Query.Order(column, descending)
	return q
}

func (q *countingQuery) Limit(n int) store.Query {
	q.Query = q.Query.Limit(n)
	return q
}

func (q *countingQuery) Get(ctx context.Context) ([]store.Row, error) {
	q.counter.gets.Add(1)
	return q.Query.Get(ctx)
}

func (q *countingQuery) Update(ctx context.Context, patch store.Row) ([]store.Row, error) {
	q.counter.updates.Add(1)
	return q.Query.Update(ctx, patch)
}

func TestRepository_List(t *testing.T) {
	t.Parallel()

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		mem.Seed("projects", store.Row{"title": "A"})
		client := &countingClient{Client: mem}
		repo, _ := newProjectRepo(client, &staticGuard{ok: true})
		ctx := context.Background()

		first, err := repo.List(ctx)
		require.NoError(t, err)
		second, err := repo.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), client.gets.Load())
	})

	t.Run("distinct filters use distinct cache keys", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		mem.Seed("projects",
			store.Row{"title": "A", "featured": true},
			store.Row{"title": "B", "featured": false},
		)
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		all, err := repo.List(ctx)
		require.NoError(t, err)
		featured, err := repo.List(ctx, repository.WithFilter(store.Eq("featured", true)))
		require.NoError(t, err)

		assert.Len(t, all, 2)
		require.Len(t, featured, 1)
		assert.Equal(t, "A", featured[0].Title)
	})

	t.Run("maps transport failure to ErrRemoteUnavailable", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})

		mem.FailNext(nil)
		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
	})

	t.Run("recovers by re-issuing after a transient failure", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		mem.Seed("projects", store.Row{"title": "A"})
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		mem.FailNext(nil)
		_, err := repo.List(ctx)
		require.ErrorIs(t, err, repository.ErrRemoteUnavailable)

		// The store is healthy again; the same call must reach it instead
		// of replaying the cached failure.
		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "A", records[0].Title)
	})
}

func TestRepository_Gating(t *testing.T) {
	t.Parallel()

	t.Run("protected list requires a session", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: false},
			repository.Config[project]{Table: "projects", Protected: true})

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
	})

	t.Run("public list is exempt from the gate", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		mem.Seed("projects", store.Row{"title": "A"})
		repo, _ := newProjectRepo(mem, &staticGuard{ok: false})

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("mutations are gated regardless of protection", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: false})
		ctx := context.Background()

		_, err := repo.Create(ctx, project{Title: "A"})
		assert.ErrorIs(t, err, repository.ErrUnauthorized)

		_, err = repo.Update(ctx, "42", store.Row{"title": "B"})
		assert.ErrorIs(t, err, repository.ErrUnauthorized)

		assert.ErrorIs(t, repo.Delete(ctx, "42"), repository.ErrUnauthorized)
		assert.ErrorIs(t, repo.UpdateMany(ctx, []string{"42"}, store.Row{}), repository.ErrUnauthorized)
	})
}

func TestRepository_MutationConsistency(t *testing.T) {
	t.Parallel()

	t.Run("list after update reflects the patch, never the old value", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		created, err := repo.Create(ctx, project{Title: "A"})
		require.NoError(t, err)

		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "A", records[0].Title)

		_, err = repo.Update(ctx, created.ID, store.Row{"title": "B"})
		require.NoError(t, err)

		records, err = repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "B", records[0].Title)
	})

	t.Run("detail read after update reflects the patch", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		created, err := repo.Create(ctx, project{Title: "A"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "A", got.Title)

		_, err = repo.Update(ctx, created.ID, store.Row{"title": "B"})
		require.NoError(t, err)

		got, err = repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Title)
	})

	t.Run("create invalidates cached lists", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Empty(t, records)

		_, err = repo.Create(ctx, project{Title: "A"})
		require.NoError(t, err)

		records, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Parallel()

	t.Run("unresolvable id yields ErrNotFound", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})

		_, err := repo.Update(context.Background(), "missing", store.Row{"title": "B"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent for missing ids", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})

		assert.NoError(t, repo.Delete(context.Background(), "missing"))
	})

	t.Run("removes the record from subsequent lists", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		created, err := repo.Create(ctx, project{Title: "A"})
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, created.ID))

		records, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestRepository_UpdateMany(t *testing.T) {
	t.Parallel()

	t.Run("issues one store call when bulk update is supported", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		seeded := mem.Seed("projects",
			store.Row{"title": "A"}, store.Row{"title": "B"}, store.Row{"title": "C"},
		)
		client := &countingClient{Client: mem}
		repo, _ := newProjectRepo(client, &staticGuard{ok: true})
		ctx := context.Background()

		ids := []string{seeded[0]["id"].(string), seeded[1]["id"].(string), seeded[2]["id"].(string)}
		require.NoError(t, repo.UpdateMany(ctx, ids, store.Row{"featured": true}))

		assert.Equal(t, int32(1), client.updates.Load())

		records, err := repo.List(ctx)
		require.NoError(t, err)
		for _, record := range records {
			assert.True(t, record.Featured)
		}
	})

	t.Run("falls back to per-id updates without the capability", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory(store.WithoutBulkUpdate())
		seeded := mem.Seed("projects", store.Row{"title": "A"}, store.Row{"title": "B"})
		client := &countingClient{Client: mem}
		repo, _ := newProjectRepo(client, &staticGuard{ok: true})

		ids := []string{seeded[0]["id"].(string), seeded[1]["id"].(string)}
		require.NoError(t, repo.UpdateMany(context.Background(), ids, store.Row{"featured": true}))

		assert.Equal(t, int32(2), client.updates.Load())
	})

	t.Run("triggers exactly one list refetch cycle", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory(store.WithoutBulkUpdate())
		seeded := mem.Seed("projects",
			store.Row{"title": "A"}, store.Row{"title": "B"}, store.Row{"title": "C"},
		)
		client := &countingClient{Client: mem}
		repo, c := newProjectRepo(client, &staticGuard{ok: true})
		ctx := context.Background()

		// A live subscriber makes invalidations refetch instead of drop, so
		// the number of store reads counts invalidation cycles.
		_, cancel := c.Subscribe(cache.ListKey("project", ""))
		defer cancel()

		_, err := repo.List(ctx)
		require.NoError(t, err)
		require.Equal(t, int32(1), client.gets.Load())

		ids := []string{seeded[0]["id"].(string), seeded[1]["id"].(string), seeded[2]["id"].(string)}
		require.NoError(t, repo.UpdateMany(ctx, ids, store.Row{"featured": true}))

		require.Eventually(t, func() bool {
			return client.gets.Load() == 2
		}, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool {
			return client.gets.Load() > 2
		}, 150*time.Millisecond, 10*time.Millisecond)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		client := &countingClient{Client: mem}
		repo, _ := newProjectRepo(client, &staticGuard{ok: true})

		require.NoError(t, repo.UpdateMany(context.Background(), nil, store.Row{"featured": true}))
		assert.Zero(t, client.updates.Load())
	})
}

func TestRepository_Transforms(t *testing.T) {
	t.Parallel()

	joinTools := func(row store.Row) store.Row {
		if values, ok := row["tools"].([]any); ok {
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i], _ = v.(string)
			}
			row["tools"] = strings.Join(parts, ",")
		}
		return row
	}
	splitTools := func(row store.Row) store.Row {
		if s, ok := row["tools"].(string); ok {
			if s == "" {
				delete(row, "tools")
			} else {
				row["tools"] = strings.Split(s, ",")
			}
		}
		return row
	}

	mem := store.NewMemory()
	repo, _ := newProjectRepo(mem, &staticGuard{ok: true}, repository.Config[project]{
		Table:    "projects",
		Resource: "project",
		Encode:   joinTools,
		Decode:   splitTools,
	})
	ctx := context.Background()

	created, err := repo.Create(ctx, project{Title: "Site", Tools: []string{"go", "postgres"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, created.Tools)

	// The store holds the joined form.
	rows := mem.Rows("projects")
	require.Len(t, rows, 1)
	assert.Equal(t, "go,postgres", rows[0]["tools"])

	// Reads split it back.
	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"go", "postgres"}, records[0].Tools)
}

func TestRepository_ErrorMapping(t *testing.T) {
	t.Parallel()

	t.Run("constraint violation maps to ErrRemoteRejected", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory(store.WithUniqueColumns("projects", "title"))
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})
		ctx := context.Background()

		_, err := repo.Create(ctx, project{Title: "A"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, project{Title: "A"})
		assert.ErrorIs(t, err, repository.ErrRemoteRejected)
	})

	t.Run("missing detail maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		mem := store.NewMemory()
		repo, _ := newProjectRepo(mem, &staticGuard{ok: true})

		_, err := repo.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

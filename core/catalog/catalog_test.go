package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopianhadi/adminkit/core/cache"
	"github.com/nopianhadi/adminkit/core/catalog"
	"github.com/nopianhadi/adminkit/core/repository"
	"github.com/nopianhadi/adminkit/core/store"
)

type allowGuard struct{}

func (allowGuard) Authenticated(context.Context) bool { return true }

type denyGuard struct{}

func (denyGuard) Authenticated(context.Context) bool { return false }

func newRegistry(guard repository.Guard) (*catalog.Registry, *store.Memory) {
	mem := store.NewMemory()
	return catalog.New(mem, cache.New(), guard), mem
}

func TestRegistry_Protection(t *testing.T) {
	t.Parallel()

	t.Run("administrative types require a session", func(t *testing.T) {
		t.Parallel()

		registry, _ := newRegistry(denyGuard{})
		ctx := context.Background()

		_, err := registry.Users().List(ctx)
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
		_, err = registry.Settings().List(ctx)
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
		_, err = registry.APIKeys().List(ctx)
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
		_, err = registry.ContactMessages().List(ctx)
		assert.ErrorIs(t, err, repository.ErrUnauthorized)
	})

	t.Run("published content reads without a session", func(t *testing.T) {
		t.Parallel()

		registry, mem := newRegistry(denyGuard{})
		mem.Seed("faqs", store.Row{"question": "Q", "answer": "A"})

		faqs, err := registry.FAQs().List(context.Background())
		require.NoError(t, err)
		require.Len(t, faqs, 1)
		assert.Equal(t, "Q", faqs[0].Question)
	})
}

func TestRegistry_SharedCache(t *testing.T) {
	t.Parallel()

	// Two constructor calls produce repositories over the same cache, so a
	// mutation through one is visible through the other without a refetch
	// being forced by the caller.
	registry, _ := newRegistry(allowGuard{})
	ctx := context.Background()

	first := registry.Projects()
	second := registry.Projects()

	records, err := first.List(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = second.Create(ctx, catalog.Project{Title: "Site"})
	require.NoError(t, err)

	records, err = first.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Site", records[0].Title)
}

func TestRegistry_ColumnTransforms(t *testing.T) {
	t.Parallel()

	t.Run("technology tools are comma joined at rest", func(t *testing.T) {
		t.Parallel()

		registry, mem := newRegistry(allowGuard{})
		ctx := context.Background()

		created, err := registry.Technologies().Create(ctx, catalog.Technology{
			Name:  "Backend",
			Tools: []string{"go", "postgres", "redis"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "postgres", "redis"}, created.Tools)

		rows := mem.Rows("technologies")
		require.Len(t, rows, 1)
		assert.Equal(t, "go,postgres,redis", rows[0]["tools"])

		listed, err := registry.Technologies().List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, []string{"go", "postgres", "redis"}, listed[0].Tools)
	})

	t.Run("pricing plan features are newline joined at rest", func(t *testing.T) {
		t.Parallel()

		registry, mem := newRegistry(allowGuard{})
		ctx := context.Background()

		_, err := registry.PricingPlans().Create(ctx, catalog.PricingPlan{
			Name:     "Pro",
			Features: []string{"Unlimited projects", "Priority support"},
		})
		require.NoError(t, err)

		rows := mem.Rows("pricing_plans")
		require.Len(t, rows, 1)
		assert.Equal(t, "Unlimited projects\nPriority support", rows[0]["features"])

		listed, err := registry.PricingPlans().List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, []string{"Unlimited projects", "Priority support"}, listed[0].Features)
	})

	t.Run("category slug derives from the name when omitted", func(t *testing.T) {
		t.Parallel()

		registry, _ := newRegistry(allowGuard{})
		ctx := context.Background()

		created, err := registry.Categories().Create(ctx, catalog.Category{Name: "Web & Mobile Apps"})
		require.NoError(t, err)
		assert.Equal(t, "web-mobile-apps", created.Slug)

		// An explicit slug wins over derivation.
		explicit, err := registry.Categories().Create(ctx, catalog.Category{Name: "Design", Slug: "custom"})
		require.NoError(t, err)
		assert.Equal(t, "custom", explicit.Slug)
	})

	t.Run("empty tools column decodes to an absent slice", func(t *testing.T) {
		t.Parallel()

		registry, mem := newRegistry(allowGuard{})
		mem.Seed("technologies", store.Row{"name": "Design", "tools": ""})

		listed, err := registry.Technologies().List(context.Background())
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Nil(t, listed[0].Tools)
	})
}

func TestRegistry_ProjectOrdering(t *testing.T) {
	t.Parallel()

	registry, mem := newRegistry(allowGuard{})
	mem.Seed("projects",
		store.Row{"title": "old", "created_at": "2024-01-01T00:00:00Z"},
		store.Row{"title": "new", "created_at": "2025-06-01T00:00:00Z"},
	)

	records, err := registry.Projects().List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].Title)
	assert.Equal(t, "old", records[1].Title)
}

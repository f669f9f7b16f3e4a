package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nopianhadi/adminkit/core/cache"
)

func TestKey(t *testing.T) {
	t.Parallel()

	t.Run("keys are structurally equal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cache.NewKey("project", "list"), cache.NewKey("project", "list"))
		assert.NotEqual(t, cache.NewKey("project", "list"), cache.NewKey("faq", "list"))
		assert.Equal(t,
			cache.NewKey("project", "list", "featured", true),
			cache.NewKey("project", "list", "featured", true),
		)
	})

	t.Run("string form", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "project", cache.NewKey("project").String())
		assert.Equal(t, "project/list", cache.NewKey("project", "list").String())
		assert.Equal(t, "project/id/42", cache.DetailKey("project", "42").String())
	})

	t.Run("list detection", func(t *testing.T) {
		t.Parallel()

		assert.True(t, cache.ListKey("project", "").IsList())
		assert.True(t, cache.ListKey("project", "featured=true").IsList())
		assert.False(t, cache.DetailKey("project", "42").IsList())
	})
}

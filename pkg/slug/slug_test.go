package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nopianhadi/adminkit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	t.Run("basic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hello-world", slug.Make("Hello, World!"))
	})

	t.Run("folds diacritics", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "cafe-restaurant", slug.Make("Café & Restaurant"))
	})

	t.Run("collapses separator runs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a-b", slug.Make("  a --- b  "))
	})

	t.Run("custom separator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "product_name", slug.Make("Product Name", slug.Separator("_")))
	})

	t.Run("max length cuts at a word boundary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "long-article", slug.Make("Long article title here", slug.MaxLength(15)))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", slug.Make("!!!"))
	})
}

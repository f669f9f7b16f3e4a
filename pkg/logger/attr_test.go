package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nopianhadi/adminkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("wraps non-nil error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")
		attr := logger.Error(err)

		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})

	t.Run("returns empty attr for nil error", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(nil)
		assert.True(t, attr.Equal(slog.Attr{}))
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("skips nil errors and preserves order", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")
		attr := logger.Errors(first, nil, second)

		assert.Equal(t, "errors", attr.Key)
		group := attr.Value.Group()
		assert.Len(t, group, 2)
		assert.Equal(t, "0", group[0].Key)
		assert.Equal(t, "2", group[1].Key)
	})

	t.Run("returns empty attr when all errors are nil", func(t *testing.T) {
		t.Parallel()

		attr := logger.Errors(nil, nil)
		assert.True(t, attr.Equal(slog.Attr{}))
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	t.Run("joins resource and params", func(t *testing.T) {
		t.Parallel()

		attr := logger.CacheKey("project", "list")
		assert.Equal(t, "project/list", attr.Value.String())
	})

	t.Run("omits separator without params", func(t *testing.T) {
		t.Parallel()

		attr := logger.CacheKey("project", "")
		assert.Equal(t, "project", attr.Value.String())
	})
}

func TestUserID(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.UserID("").Equal(slog.Attr{}))
	assert.Equal(t, "u-1", logger.UserID("u-1").Value.String())
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("req", logger.Resource("faq"), logger.Count(3))
	assert.Equal(t, "req", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}

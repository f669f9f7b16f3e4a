package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit
// nil checks, following the principle of making zero values useful.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// Uses index-based keys to preserve error order. Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	if count == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, count)
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Component identifies the emitting component, e.g. "session" or "cache".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Resource identifies a resource type, e.g. "project" or "faq".
func Resource(name string) slog.Attr {
	return slog.String("resource", name)
}

// CacheKey renders a cache key in "resource/params" form.
func CacheKey(resource, params string) slog.Attr {
	if params == "" {
		return slog.String("cache_key", resource)
	}
	return slog.String("cache_key", resource+"/"+params)
}

// UserID identifies the acting user. Returns empty Attr for empty ids.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Table identifies a remote store table.
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Duration records an elapsed duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Count records a result or batch size under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

package catalog

import (
	"strings"

	"github.com/nopianhadi/adminkit/core/repository"
	"github.com/nopianhadi/adminkit/core/store"
	"github.com/nopianhadi/adminkit/pkg/slug"
)

// ensureSlug derives the slug column from source when a draft omits it, so
// admins can create a category or post without typing a slug by hand.
func ensureSlug(source string) repository.Transform {
	return func(row store.Row) store.Row {
		if s, ok := row["slug"].(string); ok && s != "" {
			return row
		}
		if src, ok := row[source].(string); ok && src != "" {
			row["slug"] = slug.Make(src)
		}
		return row
	}
}

// joinColumn turns a slice-valued column into a single separator-joined
// string before the row is written. Non-slice values pass through untouched.
func joinColumn(column, sep string) repository.Transform {
	return func(row store.Row) store.Row {
		values, ok := row[column].([]any)
		if !ok {
			return row
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		row[column] = strings.Join(parts, sep)
		return row
	}
}

// splitColumn turns a separator-joined string column back into a slice on
// rows coming from the store. Empty strings decode to an absent field.
func splitColumn(column, sep string) repository.Transform {
	return func(row store.Row) store.Row {
		s, ok := row[column].(string)
		if !ok {
			return row
		}
		if s == "" {
			delete(row, column)
			return row
		}
		parts := strings.Split(s, sep)
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		row[column] = parts
		return row
	}
}

package cache

import (
	"fmt"
	"strings"
)

// Key identifies a cached query result: a resource type plus the canonical
// form of the query parameters. Keys are plain comparable values, so two keys
// built from the same inputs are the same key regardless of where they were
// built.
type Key struct {
	Resource string
	Params   string
}

// NewKey builds a key from a resource type and a parameter tuple. Parameters
// are canonicalized to their default string form and joined in order.
func NewKey(resource string, params ...any) Key {
	if len(params) == 0 {
		return Key{Resource: resource}
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return Key{Resource: resource, Params: strings.Join(parts, "/")}
}

// ListKey is the conventional key for a resource's list view with the given
// canonical parameter string (empty for the unfiltered list).
func ListKey(resource, params string) Key {
	if params == "" {
		return NewKey(resource, "list")
	}
	return NewKey(resource, "list", params)
}

// DetailKey is the conventional key for a single record's detail view.
func DetailKey(resource, id string) Key {
	return NewKey(resource, "id", id)
}

// IsList reports whether the key addresses a list view of its resource.
func (k Key) IsList() bool {
	return k.Params == "list" || strings.HasPrefix(k.Params, "list/")
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "/" + k.Params
}

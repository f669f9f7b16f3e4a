// Package catalog declares every administrable resource type of the site
// back office as data: one typed record struct and one repository.Config per
// type, bound together by a Registry that shares a single store client,
// resource cache, and session guard across all of them.
//
// Adding a resource type means adding a struct, a config value, and a
// one-line constructor: no new repository code.
//
//	registry := catalog.New(client, resourceCache, sessionManager)
//
//	projects := registry.Projects()
//	faqs := registry.FAQs()
//
// Column transforms that do not fit encoding/json (comma-joined tag columns,
// newline-joined feature lists) are declared here next to the type that owns
// them.
package catalog

// Package repository provides the uniform CRUD surface over the remote table
// store: one generic implementation parameterized by a declarative per-type
// Config instead of a hand-written repository per table.
//
// A Repository hides the store's query syntax, maps store errors onto the
// module's error taxonomy, gates operations on the authentication session,
// and declares which cache keys each mutation invalidates. Reads are served
// through the resource cache; after a successful mutation the affected list
// and detail keys are invalidated exactly once, so every dependent view
// observes the post-mutation state without a reload.
//
// Basic usage:
//
//	repo := repository.New(client, resourceCache, sessionManager,
//		repository.Config[Project]{
//			Table:     "projects",
//			Protected: false,
//			Order:     store.Order{Column: "created_at", Descending: true},
//		},
//	)
//
//	projects, err := repo.List(ctx)
//	created, err := repo.Create(ctx, Project{Title: "New site"})
//	_, err = repo.Update(ctx, created.ID, store.Row{"title": "Renamed"})
//	err = repo.Delete(ctx, created.ID) // idempotent
//
// Per-type column transforms (e.g. a comma-separated column that the record
// type models as a slice) are declared once in the Config via Encode and
// Decode and applied at the repository boundary.
package repository

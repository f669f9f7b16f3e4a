// Package postgrest implements the table-store client against a
// PostgREST-style HTTP endpoint, the backend the site's admin data lives in.
//
// It satisfies core/store.Client: the query builder is translated into
// PostgREST query parameters (col=eq.v, col=in.(a,b), or=(...), order, limit)
// and mutations ask for the written representation back, so repositories see
// server-assigned ids and timestamps without a second round trip.
//
// Configuration comes from the environment; both the endpoint URL and the
// API key are required, and their absence is a startup error:
//
//	var cfg postgrest.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	client, err := postgrest.New(cfg)
//
// Transport failures map to store.ErrUnavailable, constraint violations
// (HTTP 409) to store.ErrRejected, and single-row reads that match zero or
// multiple rows to store.ErrNotFound and store.ErrMultipleRows.
package postgrest

// Package pg provides PostgreSQL connection management with embedded goose
// migrations, plus a direct-SQL implementation of core/store.Client for
// deployments that talk to Postgres without the HTTP gateway.
//
// Connect creates a pgxpool with retry logic and verifies connectivity with
// a ping before returning. Migrate applies the embedded schema (users table
// and the content tables the admin catalog manages) through goose:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool); err != nil {
//		log.Fatal(err)
//	}
//
//	client := pg.NewClient(pool)
//	registry := catalog.New(client, cache.New(), manager)
//
// The client translates the store query builder into parameterized SQL.
// Mutations return the written rows via RETURNING *, unique-constraint
// violations map to store.ErrRejected, and connection failures to
// store.ErrUnavailable.
//
// WithTx attaches a pgx.Tx to a context; client operations on that context
// run inside the transaction, so multi-statement admin operations can stay
// atomic.
package pg

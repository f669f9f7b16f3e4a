// Package cache provides a process-wide, query-keyed resource cache that
// guarantees views observe post-mutation state without redundant remote
// fetches.
//
// Results are stored under structural keys (resource type plus canonical
// parameters). A read of an absent key triggers an asynchronous fetch and
// returns a loading placeholder; concurrent reads of the same key share a
// single in-flight fetch. Mutations invalidate keys explicitly: keys with
// live subscribers are refetched immediately, keys nobody watches are simply
// dropped and refetched lazily on the next read.
//
// Every fetch is tagged with a monotonic sequence number and a completion is
// discarded when the entry has already applied a newer one. This makes the
// cache safe against out-of-order completions: a fetch that was in flight
// when its key was invalidated may still land, but it can never resurrect
// stale data over the invalidation's own refetch. The most recently initiated
// fetch wins; there is no merging and no cancellation.
//
// Basic usage:
//
//	c := cache.New()
//	key := cache.NewKey("project", "list")
//
//	entry := c.Wait(ctx, key, func(ctx context.Context) (any, error) {
//		return client.From("projects").Get(ctx)
//	})
//
//	updates, cancel := c.Subscribe(key)
//	defer cancel()
//
//	// after a mutation:
//	c.Invalidate(key)
//
// On logout the whole cache is dropped so no protected data survives the
// session:
//
//	manager.OnChange(func(status session.Status) {
//		if status == session.StatusUnauthenticated {
//			c.Reset()
//		}
//	})
package cache

package cache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nopianhadi/adminkit/pkg/logger"
)

// subscriberBuffer is the per-subscriber channel capacity. Delivery is
// non-blocking: a subscriber that falls this far behind misses updates
// rather than stalling the cache.
const subscriberBuffer = 8

// Fetcher loads the current remote state for a key.
type Fetcher func(ctx context.Context) (any, error)

// Entry is an immutable snapshot of a cached result.
type Entry struct {
	Key       Key
	Data      any
	Loading   bool
	Err       error
	UpdatedAt time.Time
}

type entry struct {
	data      any
	err       error
	hasResult bool
	loading   bool
	stale     bool
	applied   uint64
	updatedAt time.Time
	fetch     Fetcher
	subs      map[int]chan Entry
}

// Cache is a process-wide keyed store of query results. The zero value is
// not usable; create instances with New.
type Cache struct {
	log   *slog.Logger
	now   func() time.Time
	group singleflight.Group
	seq   atomic.Uint64

	mu      sync.Mutex
	entries map[Key]*entry
	nextSub int
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger configures structured logging. Logging is discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		entries: make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the current entry for key. A missing or stale entry triggers
// an asynchronous fetch and Read returns a loading placeholder; concurrent
// reads of the same key share the in-flight fetch instead of issuing
// duplicate remote calls. The fetcher is remembered so invalidations can
// refetch the key for its subscribers.
func (c *Cache) Read(ctx context.Context, key Key, fetch Fetcher) Entry {
	c.mu.Lock()
	e := c.ensureLocked(key)
	if fetch != nil {
		e.fetch = fetch
	}

	if e.hasResult && !e.stale {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		return snap
	}
	if e.loading {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		return snap
	}

	f := e.fetch
	if f == nil {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		return snap
	}
	e.loading = true
	seq := c.seq.Add(1)
	snap := c.snapshotLocked(key, e)
	c.mu.Unlock()

	// In-flight fetches are never cancelled; a detached context keeps the
	// completion (and its sequence check) independent of the caller.
	go c.runFetch(context.WithoutCancel(ctx), key, f, seq)
	return snap
}

// Wait is the blocking form of Read: it returns only after the key holds a
// settled result (or the fetch failed). Concurrent Wait and Read calls for
// the same key still share one remote fetch.
func (c *Cache) Wait(ctx context.Context, key Key, fetch Fetcher) Entry {
	c.mu.Lock()
	e := c.ensureLocked(key)
	if fetch != nil {
		e.fetch = fetch
	}

	if e.hasResult && !e.stale {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		return snap
	}

	f := e.fetch
	if f == nil {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		return snap
	}
	e.loading = true
	seq := c.seq.Add(1)
	c.mu.Unlock()

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		return f(ctx)
	})
	return c.apply(key, seq, v, err)
}

// Invalidate marks the given keys stale. Keys with live subscribers are
// refetched immediately in the background; keys without subscribers are
// dropped and will be fetched lazily on their next read. The stale marking
// happens synchronously: any read issued after Invalidate returns observes
// post-invalidation state, never the cached pre-mutation payload.
func (c *Cache) Invalidate(keys ...Key) {
	for _, key := range keys {
		c.invalidateOne(key)
	}
}

// InvalidateFunc invalidates every cached key matching pred.
func (c *Cache) InvalidateFunc(pred func(Key) bool) {
	c.mu.Lock()
	var keys []Key
	for key := range c.entries {
		if pred(key) {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.invalidateOne(key)
	}
}

// Subscribe registers interest in a key. Every settled result and every
// invalidation of the key is delivered as an Entry snapshot. Delivery is
// non-blocking; slow subscribers miss intermediate updates. The returned
// cancel function is idempotent.
func (c *Cache) Subscribe(key Key) (<-chan Entry, func()) {
	c.mu.Lock()
	e := c.ensureLocked(key)
	c.nextSub++
	id := c.nextSub
	ch := make(chan Entry, subscriberBuffer)
	if e.subs == nil {
		e.subs = make(map[int]chan Entry)
	}
	e.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if e, ok := c.entries[key]; ok {
			delete(e.subs, id)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Peek returns the entry for key without triggering a fetch.
func (c *Cache) Peek(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return c.snapshotLocked(key, e), true
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every entry, detaching all subscribers. Used on logout.
// In-flight completions for dropped keys are discarded when they land.
func (c *Cache) Reset() {
	c.mu.Lock()
	for key := range c.entries {
		c.group.Forget(key.String())
	}
	c.entries = make(map[Key]*entry)
	c.mu.Unlock()
}

func (c *Cache) invalidateOne(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}

	// Detach any in-flight execution so the refetch observes fresh state
	// instead of joining a fetch started before the mutation.
	c.group.Forget(key.String())

	if len(e.subs) == 0 {
		delete(c.entries, key)
		c.mu.Unlock()
		return
	}

	e.stale = true
	e.hasResult = false
	e.data = nil
	e.err = nil
	f := e.fetch
	e.loading = f != nil
	seq := c.seq.Add(1)
	snap := c.snapshotLocked(key, e)
	subs := subscriberChannels(e)
	c.mu.Unlock()

	deliver(subs, snap)
	if f != nil {
		go c.runFetch(context.Background(), key, f, seq)
	}
}

func (c *Cache) runFetch(ctx context.Context, key Key, fetch Fetcher, seq uint64) {
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		return fetch(ctx)
	})
	c.apply(key, seq, v, err)
}

// apply settles a fetch completion. Completions older than the entry's
// last-applied sequence are discarded so an invalidation's refetch always
// wins over a fetch that raced with it.
func (c *Cache) apply(key Key, seq uint64, data any, err error) Entry {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		// Key was dropped while the fetch was in flight.
		c.mu.Unlock()
		return Entry{Key: key}
	}
	if seq <= e.applied {
		snap := c.snapshotLocked(key, e)
		c.mu.Unlock()
		c.log.Debug("discarded stale fetch completion",
			logger.Component("cache"), logger.CacheKey(key.Resource, key.Params))
		return snap
	}

	e.applied = seq
	e.data = data
	e.err = err
	e.hasResult = err == nil
	e.loading = false
	// A failed fetch stays stale: the error is reported to this read's
	// caller and its subscribers, but the next read retries the store
	// instead of replaying the failure.
	e.stale = err != nil
	e.updatedAt = c.now()

	snap := c.snapshotLocked(key, e)
	subs := subscriberChannels(e)
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("fetch failed",
			logger.Component("cache"),
			logger.CacheKey(key.Resource, key.Params),
			logger.Error(err))
	}
	deliver(subs, snap)
	return snap
}

// ensureLocked returns the entry for key, creating it lazily.
// Caller must hold mu.
func (c *Cache) ensureLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Caller must hold mu.
func (c *Cache) snapshotLocked(key Key, e *entry) Entry {
	return Entry{
		Key:       key,
		Data:      e.data,
		Loading:   e.loading,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
	}
}

// Caller must hold mu.
func subscriberChannels(e *entry) []chan Entry {
	if len(e.subs) == 0 {
		return nil
	}
	out := make([]chan Entry, 0, len(e.subs))
	for _, ch := range e.subs {
		out = append(out, ch)
	}
	return out
}

func deliver(subs []chan Entry, snap Entry) {
	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

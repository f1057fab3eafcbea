package store

import (
	"sync"
	"time"

	"smartx/internal/domain"
	"smartx/internal/metrics"
)

type CacheOption func(*Cache)

// WithClock replaces time.Now for the timestamps the accessors stamp.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func WithCacheMetrics(m *metrics.StoreMetrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// Cache is the authoritative read copy of the snapshot shared by all
// accessors. It is filled from the HybridStore on first use and every change
// is replayed on the store afterwards, outside the cache lock.
type Cache struct {
	// wmu orders writers so the store sees ops in cache order. Taken
	// before mu; readers only take mu.
	wmu         sync.Mutex
	mu          sync.Mutex
	store       *HybridStore
	snap        domain.Snapshot
	initialized bool
	now         func() time.Time
	metrics     *metrics.StoreMetrics
}

func NewCache(store *HybridStore, opts ...CacheOption) *Cache {
	c := &Cache{store: store, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ensure fills the cache once. Caller holds c.mu.
func (c *Cache) ensure() {
	if c.initialized {
		return
	}
	c.snap = c.store.CurrentSnapshot()
	c.initialized = true
}

// Now is the current time in the stored timestamp format.
func (c *Cache) Now() string { return domain.Timestamp(c.now()) }

// View runs fn with the cache locked. fn must not keep references into s.
func (c *Cache) View(fn func(s *domain.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure()
	fn(&c.snap)
}

// Apply asks prepare for the change to make, applies it to the cache, then
// replays it on the store. prepare reads s but must not modify it; returning
// nil means there is nothing to change and yields a zero Result. Writers are
// serialised, so readers never wait on the durable write but a later writer
// does.
func (c *Cache) Apply(prepare func(s *domain.Snapshot) Op) Result {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	c.ensure()
	op := prepare(&c.snap)
	if op == nil {
		c.mu.Unlock()
		return Result{}
	}
	op(&c.snap)
	c.mu.Unlock()

	return c.store.Apply(op)
}

// Snapshot returns a copy of the cache.
func (c *Cache) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure()
	return c.snap.Clone()
}

// Sync throws the cache away and reloads it from the store. Changes whose
// durable write failed are lost when the store is backed by a medium.
func (c *Cache) Sync() domain.Counts {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	s := c.store.Reload()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = s
	c.initialized = true
	c.metrics.ObserveSync()
	return s.Counts()
}

// Flush writes the whole cache through the store, retrying any durable
// write that failed earlier.
func (c *Cache) Flush() Result {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.store.Save(c.Snapshot())
}

func (c *Cache) Status() Status { return c.store.Status() }

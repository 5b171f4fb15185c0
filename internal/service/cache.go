// Package service contains the business logic for the packaging service.
package service

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/metrics"
	"github.com/guttosm/packaging-service/internal/service/cache"
)

const (
	defaultCacheShards   = 16
	cacheCleanupInterval = time.Minute
)

// ShardedCache holds catalog snapshots keyed by location, split over
// independently locked LRU shards.
type ShardedCache struct {
	shards    []*ttlCache
	numShards int
	shardMask uint32
}

// NewShardedCache splits capacity over numShards LRU shards whose entries live for ttl.
// numShards is rounded up to a power of 2; values <= 0 select 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = defaultCacheShards
	}
	shardCount := 1
	for shardCount < numShards {
		shardCount <<= 1
	}

	perShard := max(capacity/shardCount, 1)
	sc := &ShardedCache{
		shards:    make([]*ttlCache, shardCount),
		numShards: shardCount,
		shardMask: uint32(shardCount - 1),
	}
	for i := range sc.shards {
		sc.shards[i] = newTTLCache(perShard, ttl)
	}
	return sc
}

func (sc *ShardedCache) shardFor(locationID string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(locationID))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get returns a copy of the snapshot cached for locationID.
func (sc *ShardedCache) Get(locationID string) ([]model.PackageDimension, bool) {
	return sc.shardFor(locationID).Get(locationID)
}

// Set caches a copy of catalog for locationID.
func (sc *ShardedCache) Set(locationID string, catalog []model.PackageDimension) {
	sc.shardFor(locationID).Set(locationID, catalog)
	sc.publishSize()
}

// Invalidate drops the snapshot of locationID.
func (sc *ShardedCache) Invalidate(locationID string) {
	sc.shardFor(locationID).Invalidate(locationID)
	sc.publishSize()
}

// Clear drops every snapshot.
func (sc *ShardedCache) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
	sc.publishSize()
}

func (sc *ShardedCache) publishSize() {
	m := sc.Metrics()
	metrics.UpdateCacheMetrics(m.Size, m.Capacity)
}

// Stop ends the expiry sweep of every shard.
func (sc *ShardedCache) Stop() {
	for _, shard := range sc.shards {
		shard.Stop()
	}
}

// Metrics sums the counters of all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, shard := range sc.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is one LRU shard. The front of order is the most recently used snapshot.
type ttlCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type snapshotEntry struct {
	locationID string
	catalog    []model.PackageDimension
	expiresAt  time.Time
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: max(capacity, 1),
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go c.sweep()
	return c
}

func cloneCatalog(catalog []model.PackageDimension) []model.PackageDimension {
	if catalog == nil {
		return nil
	}
	return append(make([]model.PackageDimension, 0, len(catalog)), catalog...)
}

// Stop ends the expiry sweep. Safe to call more than once.
func (c *ttlCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.Lock()
	size := c.order.Len()
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *ttlCache) Get(locationID string) ([]model.PackageDimension, bool) {
	c.mu.Lock()
	elem, ok := c.items[locationID]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return nil, false
	}

	entry := elem.Value.(*snapshotEntry)
	if c.now().After(entry.expiresAt) {
		c.unlink(elem)
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return nil, false
	}

	c.order.MoveToFront(elem)
	catalog := cloneCatalog(entry.catalog)
	c.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return catalog, true
}

// Set stores a copy of catalog, evicting the least recently used snapshot when full.
func (c *ttlCache) Set(locationID string, catalog []model.PackageDimension) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if elem, ok := c.items[locationID]; ok {
		entry := elem.Value.(*snapshotEntry)
		entry.catalog = cloneCatalog(catalog)
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		metrics.RecordCacheOperation("set", "success")
		return
	}

	c.items[locationID] = c.order.PushFront(&snapshotEntry{
		locationID: locationID,
		catalog:    cloneCatalog(catalog),
		expiresAt:  expiresAt,
	})

	if c.order.Len() > c.capacity {
		c.unlink(c.order.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache) Invalidate(locationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[locationID]; ok {
		c.unlink(elem)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every snapshot and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.order.Init()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)

	metrics.RecordCacheOperation("clear", "success")
}

func (c *ttlCache) sweep() {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup drops expired snapshots.
func (c *ttlCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*snapshotEntry).expiresAt) {
			c.unlink(elem)
		}
		elem = prev
	}
}

func (c *ttlCache) unlink(elem *list.Element) {
	entry := c.order.Remove(elem).(*snapshotEntry)
	delete(c.items, entry.locationID)
}

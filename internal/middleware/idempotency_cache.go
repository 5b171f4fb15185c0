package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a completed response that can be replayed.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// idempotencyEntry tracks one scoped key. Response is nil while the first request runs.
type idempotencyEntry struct {
	Fingerprint string
	Response    *cachedResponse
	Timestamp   time.Time
}

// idempotencyCache holds idempotency entries until they expire.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*idempotencyEntry
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:  make(map[string]*idempotencyEntry),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Reserve claims key for a request with the given body fingerprint.
// It returns a copy of the live entry and false when key is already taken.
func (c *idempotencyCache) Reserve(key, fingerprint string) (idempotencyEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, ok := c.items[key]; ok && now.Sub(entry.Timestamp) <= c.ttl {
		return *entry, false
	}
	c.items[key] = &idempotencyEntry{Fingerprint: fingerprint, Timestamp: now}
	return idempotencyEntry{}, true
}

// Complete stores the response of a reserved key and restarts its TTL.
func (c *idempotencyCache) Complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.Response = resp
		entry.Timestamp = c.now()
	}
}

// Release frees a reserved key so the request can be retried.
func (c *idempotencyCache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len returns the number of live and expired entries not yet cleaned up.
func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
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

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.items {
		if now.Sub(entry.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}

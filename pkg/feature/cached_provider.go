package feature

import (
	"context"
	"errors"
	"sync"
	"time"
)

type cacheEntry struct {
	enabled  bool
	notFound bool
	expires  time.Time
}

// Cached decorates a Provider with a short-TTL in-process cache. Flags change
// rarely and are read on every enforcement check, so a bounded-staleness
// cache keeps the hot path off the database while still converging on the
// stored value within one TTL of an operator toggle.
type Cached struct {
	next    Provider
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// CachedOption configures a Cached provider.
type CachedOption func(*Cached)

// WithCacheClock overrides the cache's time source, for tests.
func WithCacheClock(now func() time.Time) CachedOption {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCached wraps next with a TTL cache. A non-positive ttl defaults to 30s.
func NewCached(next Provider, ttl time.Duration, opts ...CachedOption) *Cached {
	if next == nil {
		panic("feature: next provider cannot be nil")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	c := &Cached{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) IsEnabled(ctx context.Context, name string) (bool, error) {
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()

	if ok && now.Before(entry.expires) {
		if entry.notFound {
			return false, ErrFlagNotFound
		}
		return entry.enabled, nil
	}

	enabled, err := c.next.IsEnabled(ctx, name)
	switch {
	case err == nil:
		c.store(name, cacheEntry{enabled: enabled, expires: now.Add(c.ttl)})
	case errors.Is(err, ErrFlagNotFound):
		// Negative entries are cached too, so a missing row does not turn
		// every check into a database read.
		c.store(name, cacheEntry{notFound: true, expires: now.Add(c.ttl)})
	default:
		// Storage errors are not cached; the next read retries the backend.
		return false, err
	}
	return enabled, err
}

// SetEnabled writes through to the backend and drops the cached entry so the
// new value is visible immediately in this process.
func (c *Cached) SetEnabled(ctx context.Context, name string, enabled bool) error {
	if err := c.next.SetEnabled(ctx, name, enabled); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
	return nil
}

func (c *Cached) store(name string, entry cacheEntry) {
	c.mu.Lock()
	c.entries[name] = entry
	c.mu.Unlock()
}

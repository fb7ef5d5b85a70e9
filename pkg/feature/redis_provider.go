package feature

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "feature:flag:"

// RedisCached decorates a Provider with a Redis-backed cache so the bounded
// staleness window is shared across processes: after an operator toggle, one
// DEL converges every instance instead of each waiting out its own TTL.
// Redis being down degrades to reading the underlying provider directly.
type RedisCached struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCached wraps next with a Redis cache. A non-positive ttl defaults
// to 30s.
func NewRedisCached(next Provider, client *redis.Client, ttl time.Duration) *RedisCached {
	if next == nil {
		panic("feature: next provider cannot be nil")
	}
	if client == nil {
		panic("feature: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCached{next: next, client: client, ttl: ttl}
}

func (r *RedisCached) IsEnabled(ctx context.Context, name string) (bool, error) {
	key := redisKeyPrefix + name

	val, err := r.client.Get(ctx, key).Result()
	if err == nil {
		switch val {
		case "1":
			return true, nil
		case "0":
			return false, nil
		case "missing":
			return false, ErrFlagNotFound
		}
	}

	enabled, err := r.next.IsEnabled(ctx, name)
	switch {
	case err == nil:
		r.set(ctx, key, boolVal(enabled))
	case errors.Is(err, ErrFlagNotFound):
		r.set(ctx, key, "missing")
	default:
		return false, err
	}
	return enabled, err
}

// SetEnabled writes through to the backend and drops the shared cache entry.
func (r *RedisCached) SetEnabled(ctx context.Context, name string, enabled bool) error {
	if err := r.next.SetEnabled(ctx, name, enabled); err != nil {
		return err
	}
	// Best effort: a failed DEL only delays convergence by one TTL.
	_ = r.client.Del(ctx, redisKeyPrefix+name).Err()
	return nil
}

func (r *RedisCached) set(ctx context.Context, key, val string) {
	_ = r.client.Set(ctx, key, val, r.ttl).Err()
}

func boolVal(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyAll    = "catalog:plans:all"
	cacheKeyActive = "catalog:plans:active"
)

// Cache is the interface for plan-listing caches.
type Cache interface {
	// Get retrieves a cached listing by key.
	Get(ctx context.Context, key string) ([]Plan, bool)

	// Set stores a listing under key.
	Set(ctx context.Context, key string, plans []Plan) error

	// Delete removes a listing from the cache.
	Delete(ctx context.Context, key string) error
}

// NoOpCache disables caching; every listing hits the store.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, key string) ([]Plan, bool) { return nil, false }
func (NoOpCache) Set(ctx context.Context, key string, plans []Plan) error {
	return nil
}
func (NoOpCache) Delete(ctx context.Context, key string) error { return nil }

// RedisCache caches plan listings in Redis with a TTL. The catalog is
// read-mostly, so even a short TTL absorbs most of the listing traffic.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed Cache. A non-positive ttl defaults to
// one minute.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Plan, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var plans []Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		// Corrupt entry; drop it so the next read repopulates.
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return plans, true
}

func (c *RedisCache) Set(ctx context.Context, key string, plans []Plan) error {
	data, err := json.Marshal(plans)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

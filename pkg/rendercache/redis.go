package rendercache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/depictlang/depict/pkg/observability"
)

// RedisCache stores rendered output in Redis, namespaced by a key prefix so
// multiple applications can share one Redis instance without collisions.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache. addr is a "host:port" address;
// prefix is prepended to every key (e.g. "depict:").
func NewRedisCache(addr, prefix string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (c *RedisCache) fullKey(key string) string {
	return c.prefix + key
}

// Get retrieves a value from the cache, firing an observability.CacheHooks
// hit or miss event.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, "render")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, "render")
	return data, true, nil
}

// Set stores a value in the cache with the given TTL. A zero TTL means no
// expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.fullKey(key), data, ttl).Err(); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
	return nil
}

// Delete removes a value from the cache. A missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.fullKey(key)).Err()
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueryTimeout bounds individual Redis round trips so a slow
// cache cannot stall the execution path it is meant to protect.
const DefaultQueryTimeout = 250 * time.Millisecond

// RedisCache stores values in Redis, letting replicas share stale
// copies. The caller owns the redis.Client lifecycle.
type RedisCache struct {
	client       *redis.Client
	prefix       string
	queryTimeout time.Duration
}

// RedisOption customizes a RedisCache.
type RedisOption func(*RedisCache)

// WithPrefix namespaces all keys with the given prefix.
func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithQueryTimeout bounds each Redis round trip.
func WithQueryTimeout(d time.Duration) RedisOption {
	return func(c *RedisCache) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

// NewRedisCache creates a Redis-backed cache on an existing client.
func NewRedisCache(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client:       client,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *RedisCache) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.queryTimeout)
}

// Get retrieves a value. Redis errors are treated as misses: a broken
// cache must degrade to "no cached value", never fail the caller.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	data, err := c.client.Get(qctx, c.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value with the given TTL. TTL<=0 means no caching.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	return c.client.Set(qctx, c.key(key), value, ttl).Err()
}

// Delete removes a value. Idempotent - no error on miss.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	return c.client.Del(qctx, c.key(key)).Err()
}

// Ensure RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)

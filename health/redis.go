package health

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisChecker verifies the stale-value cache is reachable. A dead
// cache is reported as degraded, not unhealthy: executions still work,
// they just lose the stale fallback.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a checker that pings the given client.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Name returns the name of this checker.
func (c *RedisChecker) Name() string {
	return "redis-cache"
}

// Check pings the Redis server.
func (c *RedisChecker) Check(ctx context.Context) Result {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return Degraded(fmt.Sprintf("cache unreachable: %v", err))
	}
	return Healthy("cache reachable")
}

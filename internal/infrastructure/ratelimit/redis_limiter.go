package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/medbooksvc/domain"
)

// RedisLimiterImpl implements domain.RateLimiter with a fixed window per
// key: INCR on every request, EXPIRE on the first hit of a window.
type RedisLimiterImpl struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a new Redis-backed fixed-window rate limiter.
// prefix namespaces the counters so multiple limiters can share one Redis.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) domain.RateLimiter {
	return &RedisLimiterImpl{
		client: client,
		prefix: "rl:" + prefix + ":",
		limit:  int64(limit),
		window: window,
	}
}

// Allow implements domain.RateLimiter
func (l *RedisLimiterImpl) Allow(ctx context.Context, key string) (bool, int64, error) {
	counterKey := l.prefix + key

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// First hit in this window starts the clock
	if count == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	if count > l.limit {
		return false, 0, nil
	}
	return true, l.limit - count, nil
}

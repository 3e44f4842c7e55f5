package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pesabot/pesabot-backend/pkg/logger"
)

// RateLimiter counts events per key in a fixed window.
type RateLimiter struct {
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter for key and reports whether it is still within
// the limit. The window starts on the first event for the key.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := fmt.Sprintf("%s:%s", r.prefix, key)

	count, err := client.Incr(ctx, fullKey).Result()
	if err != nil {
		logger.Error("Failed to increment rate limit counter", err, map[string]interface{}{
			"key": fullKey,
		})
		return false, err
	}

	if count == 1 {
		if err := client.Expire(ctx, fullKey, r.window).Err(); err != nil {
			logger.Error("Failed to set rate limit window", err, map[string]interface{}{
				"key": fullKey,
			})
			return false, err
		}
	}

	if count > int64(r.limit) {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"key":   fullKey,
			"count": count,
			"limit": r.limit,
		})
		return false, nil
	}

	return true, nil
}

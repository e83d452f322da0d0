package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces per-resource request budgets backed by Redis.
// The enabled flag comes from config so test and development runs are
// never throttled and never depend on ambient process state.
type RateLimiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewRateLimiter builds a limiter for the given environment. Limits are
// enforced only in production-like environments.
func NewRateLimiter(rdb *redis.Client, env string) *RateLimiter {
	enabled := env != "test" && env != "development" && env != ""
	return &RateLimiter{rdb: rdb, enabled: enabled}
}

// CheckRateLimit checks whether a resource is within its budget.
// Returns true if allowed, false if the limit is exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// INCR and set EXPIRE if new
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	if cnt > int64(limit) {
		return false, nil
	}
	return true, nil
}

// Limit returns a Fiber middleware enforcing `limit` requests per `window`.
// It keys by authenticated userID (if set in c.Locals("userID")) otherwise by
// remote IP, and fails open when Redis is unavailable.
func (rl *RateLimiter) Limit(limit int, window time.Duration, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.enabled {
			return c.Next()
		}

		ctx := context.Background()

		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		// Use the provided name or the request path as the resource identifier
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		allowed, err := CheckRateLimit(ctx, rl.rdb, resource, id, limit, window)
		if err != nil {
			// Fail open
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"quill/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// HomeFeedKey is the single cache entry holding the rendered home feed.
// It is the only feed the application ever caches: group, author and follow
// feeds are always recomputed because freshness matters more there.
const HomeFeedKey = "feed:home"

// homeFeedTTL bounds how stale the home feed may get when no post mutation
// happens. Mutations invalidate the entry immediately regardless of the TTL.
var homeFeedTTL = 20 * time.Second

// SetHomeFeedTTL overrides the home feed TTL; called once at boot from config.
func SetHomeFeedTTL(d time.Duration) {
	if d > 0 {
		homeFeedTTL = d
	}
}

// HomeFeedTTL returns the current home feed TTL.
func HomeFeedTTL() time.Duration {
	return homeFeedTTL
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate dest),
// then stores the result with ttl. With no Redis client every call degrades
// to a plain fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		middleware.FeedCacheHits.WithLabelValues("hit").Inc()
		return nil
	}
	middleware.FeedCacheHits.WithLabelValues("miss").Inc()

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateHomeFeed empties the home feed entry. Every post or comment
// mutation calls this; the invalidation must be visible before the mutation
// returns, so it is a synchronous DEL, not a queued one.
func InvalidateHomeFeed(ctx context.Context) {
	Invalidate(ctx, HomeFeedKey)
}

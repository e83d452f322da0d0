package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"quill/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// client is the process-wide connection every cache helper goes through.
// It stays nil when caching is disabled or Redis is unreachable; the
// helpers treat a nil client as a miss and fall through to the database.
var client *redis.Client

const connectTimeout = 5 * time.Second

// errCounterHook feeds failed commands into the Redis error counter so
// connection trouble shows up on the metrics endpoint.
type errCounterHook struct{}

func (errCounterHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errCounterHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errCounterHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Connect establishes the shared Redis connection and sets the home feed
// TTL in one step. An empty address disables caching outright, and an
// unreachable Redis degrades to the same state: every feature backed by
// this package keeps working without it, just slower.
func Connect(addr string, homeFeedTTL time.Duration) {
	SetHomeFeedTTL(homeFeedTTL)

	if addr == "" {
		client = nil
		middleware.Logger.Info("Redis disabled, serving without cache")
		return
	}

	opts, err := parseAddr(addr)
	if err != nil {
		client = nil
		middleware.Logger.Warn("invalid REDIS_URL, serving without cache", "url", addr, "error", err)
		return
	}

	c := redis.NewClient(opts)
	c.AddHook(errCounterHook{})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		client = nil
		middleware.Logger.Warn("Redis unreachable, serving without cache", "addr", opts.Addr, "error", err)
		return
	}

	client = c
	middleware.Logger.Info("Redis connected", "addr", opts.Addr)
}

// parseAddr accepts both redis:// URLs and bare host:port addresses.
func parseAddr(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// GetClient returns the shared Redis client, nil when caching is disabled.
func GetClient() *redis.Client {
	return client
}

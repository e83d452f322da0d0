package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheHits counts home-feed cache lookups by outcome (hit/miss).
	FeedCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_feed_cache_lookups_total",
		Help: "Home feed cache lookups by outcome",
	}, []string{"outcome"})

	// WebSocketConnections is the gauge of active event-stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quill_websocket_connections",
		Help: "Number of active WebSocket event-stream connections",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devfolio_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// LikeToggles counts like toggles by entity kind and resulting state.
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devfolio_like_toggles_total",
	Help: "Total number of like toggles by parent kind and resulting state",
}, []string{"kind", "state"})

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the fiberprometheus middleware for the given service
// name. The middleware registers collectors in the default registry, so it is
// created once per process regardless of how many servers are constructed.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

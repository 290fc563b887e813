package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ArticleViews counts successful article fetches by slug route.
	ArticleViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_article_views_total",
		Help: "Total number of article page views recorded",
	})

	// LikeToggles counts like toggle operations by outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total number of like toggle operations by resulting state",
	}, []string{"result"})

	// ModerationDecisions counts admin status writes by target status.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_moderation_decisions_total",
		Help: "Total number of admin status changes by target status",
	}, []string{"status"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware adapts the fiberprometheus middleware to a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

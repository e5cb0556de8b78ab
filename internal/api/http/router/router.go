package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/newsletter-server/internal/api/http/handler"
	"github.com/dtroode/newsletter-server/internal/api/http/middleware"
	"github.com/dtroode/newsletter-server/internal/logger"
	"github.com/dtroode/newsletter-server/internal/metrics"
)

const serverName = "newsletter-server"

// Router represents the HTTP router for the subscription workflow.
// It wires handlers, middleware and the metrics endpoint together.
type Router struct {
	service        handler.SubscriptionService
	metrics        *metrics.Metrics
	requestTimeout time.Duration
	logger         *logger.Logger
}

// New creates new Router instance.
//
// Parameters:
//   - service: The subscription workflow
//   - metrics: Collectors exposed on /metrics, may be nil
//   - requestTimeout: Upper bound for a single request
//   - logger: The logger for request logging
func New(
	service handler.SubscriptionService,
	metrics *metrics.Metrics,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		service:        service,
		metrics:        metrics,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Register builds the handler tree.
//
// Returns the root handler, instrumented with OpenTelemetry.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	requestMetrics := middleware.NewMetrics(r.metrics)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		logging.Handle,
		requestMetrics.Handle,
		chimw.Recoverer,
	)
	if r.requestTimeout > 0 {
		mux.Use(chimw.Timeout(r.requestTimeout))
	}

	r.registerProbeRoutes(mux)
	r.registerSubscriptionRoutes(mux)

	return otelhttp.NewHandler(mux, serverName)
}

func (r *Router) registerProbeRoutes(mux chi.Router) {
	h := handler.NewSubscription(r.service, r.logger)
	mux.Get("/health_check", h.HealthCheck)
	mux.Get("/readyz", h.Ready)
	mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())
}

func (r *Router) registerSubscriptionRoutes(mux chi.Router) {
	h := handler.NewSubscription(r.service, r.logger)
	mux.Route("/subscriptions", func(sr chi.Router) {
		sr.Post("/", h.Subscribe)
		sr.Get("/confirm", h.Confirm)
	})
}

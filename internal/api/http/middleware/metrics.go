package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/newsletter-server/internal/metrics"
)

// unmatchedRoute labels requests that did not hit a registered route, keeping
// label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request counts and latencies per route pattern.
type Metrics struct {
	metrics *metrics.Metrics
}

// NewMetrics creates a new Metrics middleware.
func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

// Handle observes every request after the inner handler returns.
func (m *Metrics) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.metrics.ObserveRequest(routePattern(r), status, start)
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/newsletter-server/internal/logger"
)

// Logging logs HTTP requests and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimw.GetReqID(r.Context())
		lg := l.logger.WithContext(r.Context())

		lg.Info("HTTP request started",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"start_time", start.Format(time.RFC3339))

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		// Handlers that never call WriteHeader answer 200.
		if status == 0 {
			status = http.StatusOK
		}

		lg.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"duration_ms", time.Since(start).Milliseconds(),
			"status", status)

		if status >= http.StatusInternalServerError {
			lg.Error("HTTP request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", requestID,
				"status", status)
		}
	})
}

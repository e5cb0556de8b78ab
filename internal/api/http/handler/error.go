package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/newsletter-server/internal/domain"
	"github.com/dtroode/newsletter-server/internal/model"
)

// statusFor maps workflow errors to response codes. Only the code reaches the
// client; error details stay in the logs.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnknownToken):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrUnknownSubscriber):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Subscription) handleError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.WithContext(r.Context()).Error("Subscription handler: request failed",
			"path", r.URL.Path,
			"error", err.Error())
	}
	writeStatus(w, code)
}

func writeStatus(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}

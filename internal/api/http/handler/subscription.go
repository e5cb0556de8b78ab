package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/newsletter-server/internal/logger"
)

// SubscriptionService defines the subscription workflow operations.
type SubscriptionService interface {
	Subscribe(ctx context.Context, name, email string) error
	Confirm(ctx context.Context, token string) error
	Ready(ctx context.Context) error
}

// Subscription handles the HTTP endpoints of the subscription workflow.
type Subscription struct {
	service SubscriptionService
	logger  *logger.Logger
}

// NewSubscription creates a new Subscription handler.
func NewSubscription(service SubscriptionService, logger *logger.Logger) *Subscription {
	return &Subscription{
		service: service,
		logger:  logger,
	}
}

// Subscribe accepts a form-encoded body with name and email fields.
func (h *Subscription) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.WithContext(r.Context()).Info("Subscription handler: malformed form body",
			"error", err.Error())
		writeStatus(w, http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("name")
	email := r.PostForm.Get("email")

	h.logger.WithContext(r.Context()).Debug("Subscription handler: processing subscribe request",
		"email", email)

	if err := h.service.Subscribe(r.Context(), name, email); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Confirm redeems the subscription_token query parameter.
func (h *Subscription) Confirm(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("subscription_token") {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	if err := h.service.Confirm(r.Context(), query.Get("subscription_token")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HealthCheck reports that the process is serving requests.
func (h *Subscription) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Ready reports whether the backing store is reachable.
func (h *Subscription) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.logger.WithContext(r.Context()).Warn("Subscription handler: not ready",
			"error", err.Error())
		writeStatus(w, http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

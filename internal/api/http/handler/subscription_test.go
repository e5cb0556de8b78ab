package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/newsletter-server/internal/domain"
	"github.com/dtroode/newsletter-server/internal/mocks"
	"github.com/dtroode/newsletter-server/internal/model"
	"github.com/dtroode/newsletter-server/internal/testutil"
)

func newTestRouter(t *testing.T) (*mocks.SubscriptionService, *chi.Mux) {
	t.Helper()

	svc := mocks.NewSubscriptionService(t)
	h := NewSubscription(svc, testutil.MakeNoopLogger())

	r := chi.NewRouter()
	r.Post("/subscriptions", h.Subscribe)
	r.Get("/subscriptions/confirm", h.Confirm)
	r.Get("/health_check", h.HealthCheck)
	r.Get("/readyz", h.Ready)
	return svc, r
}

func postForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSubscription_Subscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		serviceErr error
		wantCode   int
	}{
		{
			name:     "valid form",
			form:     url.Values{"name": {"le guin"}, "email": {"ursula_le_guin@gmail.com"}},
			wantCode: http.StatusOK,
		},
		{
			name:       "invalid email",
			form:       url.Values{"name": {"Ursula"}, "email": {"not-an-email"}},
			serviceErr: domain.ErrInvalidEmail,
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			form:       url.Values{},
			serviceErr: domain.ErrInvalidName,
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "already subscribed",
			form:       url.Values{"name": {"Ursula"}, "email": {"ursula@example.com"}},
			serviceErr: model.ErrEmailTaken,
			wantCode:   http.StatusConflict,
		},
		{
			name:       "store failure",
			form:       url.Values{"name": {"Ursula"}, "email": {"ursula@example.com"}},
			serviceErr: model.ErrStoreUnavailable,
			wantCode:   http.StatusInternalServerError,
		},
		{
			name:       "email failure",
			form:       url.Values{"name": {"Ursula"}, "email": {"ursula@example.com"}},
			serviceErr: model.ErrEmailDelivery,
			wantCode:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, router := newTestRouter(t)
			svc.On("Subscribe", mock.Anything, tt.form.Get("name"), tt.form.Get("email")).Return(tt.serviceErr).Once()

			rr := postForm(router, tt.form)
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, rr.Body.String(), "unavailable")
			}
		})
	}
}

func TestSubscription_Subscribe_MalformedBody(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader("%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubscription_Confirm(t *testing.T) {
	t.Parallel()

	const token = "abcDEF0123456789ghijKLMNO"

	tests := []struct {
		name       string
		target     string
		callsSvc   bool
		serviceErr error
		wantCode   int
	}{
		{name: "confirmed", target: "/subscriptions/confirm?subscription_token=" + token, callsSvc: true, wantCode: http.StatusOK},
		{name: "missing parameter", target: "/subscriptions/confirm", wantCode: http.StatusBadRequest},
		{name: "unknown token", target: "/subscriptions/confirm?subscription_token=" + token, callsSvc: true, serviceErr: model.ErrUnknownToken, wantCode: http.StatusUnauthorized},
		{name: "store failure", target: "/subscriptions/confirm?subscription_token=" + token, callsSvc: true, serviceErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, router := newTestRouter(t)
			if tt.callsSvc {
				svc.On("Confirm", mock.Anything, token).Return(tt.serviceErr).Once()
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestSubscription_HealthAndReady(t *testing.T) {
	t.Parallel()

	svc, router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health_check", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	svc.On("Ready", mock.Anything).Return(nil).Once()
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	svc.On("Ready", mock.Anything).Return(model.ErrStoreUnavailable).Once()
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/newsletter-server/internal/metrics"
	"github.com/dtroode/newsletter-server/internal/mocks"
	"github.com/dtroode/newsletter-server/internal/model"
	"github.com/dtroode/newsletter-server/internal/testutil"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	svc := mocks.NewSubscriptionService(t)
	m := metrics.New()
	h := New(svc, m, time.Second, testutil.MakeNoopLogger()).Register()

	svc.On("Subscribe", mock.Anything, "le guin", "ursula_le_guin@gmail.com").Return(nil).Once()
	svc.On("Confirm", mock.Anything, "missing").Return(model.ErrUnknownToken).Once()
	svc.On("Ready", mock.Anything).Return(nil).Once()

	form := url.Values{"name": {"le guin"}, "email": {"ursula_le_guin@gmail.com"}}
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/subscriptions/confirm?subscription_token=missing", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/subscriptions/confirm", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health_check", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="/subscriptions/confirm"`)
}

func TestRouter_Register_RequestTimeout(t *testing.T) {
	t.Parallel()

	svc := mocks.NewSubscriptionService(t)
	h := New(svc, nil, 20*time.Millisecond, testutil.MakeNoopLogger()).Register()

	svc.On("Ready", mock.Anything).Return(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}).Once()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_Register_NilMetrics(t *testing.T) {
	t.Parallel()

	h := New(mocks.NewSubscriptionService(t), nil, 0, testutil.MakeNoopLogger()).Register()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

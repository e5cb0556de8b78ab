package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the subscription workflow and
// the HTTP surface. A nil *Metrics records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	SubscriptionsCreated   prometheus.Counter
	SubscriptionsConfirmed prometheus.Counter
	SubscribeFailures      *prometheus.CounterVec
	EmailsSent             prometheus.Counter
	EventPublishFailures   prometheus.Counter
	RequestsTotal          *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
}

// New registers all collectors with a fresh registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SubscriptionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_subscriptions_created_total",
			Help: "Total number of pending subscribers created",
		}),
		SubscriptionsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_subscriptions_confirmed_total",
			Help: "Total number of successful confirmations, repeats included",
		}),
		SubscribeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_subscribe_failures_total",
			Help: "Subscription requests that failed, by workflow step",
		}, []string{"step"}),
		EmailsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_confirmation_emails_sent_total",
			Help: "Confirmation emails accepted by the email provider",
		}),
		EventPublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_event_publish_failures_total",
			Help: "Domain events that could not be published",
		}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "newsletter_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementSubscriptionsCreated() {
	if m == nil {
		return
	}
	m.SubscriptionsCreated.Inc()
}

func (m *Metrics) IncrementSubscriptionsConfirmed() {
	if m == nil {
		return
	}
	m.SubscriptionsConfirmed.Inc()
}

// IncrementSubscribeFailure records a failed subscription at the named step.
func (m *Metrics) IncrementSubscribeFailure(step string) {
	if m == nil {
		return
	}
	m.SubscribeFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) IncrementEmailsSent() {
	if m == nil {
		return
	}
	m.EmailsSent.Inc()
}

func (m *Metrics) IncrementEventPublishFailures() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

// ObserveRequest records one finished HTTP request.
// Call with time.Now() taken when the request started.
func (m *Metrics) ObserveRequest(route string, code int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

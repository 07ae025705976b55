package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	gatherer   prometheus.Gatherer
	registerer prometheus.Registerer

	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	SignIns             *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	SearchesTotal       prometheus.Counter
	SearchLogFailures   prometheus.Counter
	AdminWrites         *prometheus.CounterVec
	AuthEventsProcessed *prometheus.CounterVec
}

// New creates and registers all metrics on reg. A nil reg uses a fresh
// registry so that tests can build many instances.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		gatherer:   reg,
		registerer: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "caselookup_http_requests_total",
			Help: "Total number of HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caselookup_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		SignIns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "caselookup_sign_ins_total",
			Help: "Sign-in attempts by outcome",
		}, []string{"outcome"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "caselookup_active_sessions",
			Help: "Current number of registered sessions",
		}),
		SearchesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "caselookup_person_searches_total",
			Help: "Total number of non-empty person searches",
		}),
		SearchLogFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "caselookup_search_log_failures_total",
			Help: "Search log inserts that failed and were dropped",
		}),
		AdminWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "caselookup_admin_writes_total",
			Help: "Admin write operations by entity, action and outcome",
		}, []string{"entity", "action", "outcome"}),
		AuthEventsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "caselookup_auth_events_processed_total",
			Help: "Auth events handled by the session registry worker",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// IncrementSignIn counts a sign-in attempt with the given outcome
// ("success", "invalid_credentials", "disabled", "error").
func (m *Metrics) IncrementSignIn(outcome string) {
	m.SignIns.WithLabelValues(outcome).Inc()
}

// SetActiveSessions sets the current session count.
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

// IncrementSearches counts a person search that reached the store.
func (m *Metrics) IncrementSearches() {
	m.SearchesTotal.Inc()
}

// IncrementSearchLogFailures counts a dropped search log insert.
func (m *Metrics) IncrementSearchLogFailures() {
	m.SearchLogFailures.Inc()
}

// IncrementAdminWrite counts an admin write.
func (m *Metrics) IncrementAdminWrite(entity, action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.AdminWrites.WithLabelValues(entity, action, outcome).Inc()
}

// IncrementAuthEvent counts an auth event handled by the session worker.
func (m *Metrics) IncrementAuthEvent(eventType string) {
	m.AuthEventsProcessed.WithLabelValues(eventType).Inc()
}

// TrackAuthEventsDropped exposes the auth event bus drop count, read from
// dropped at scrape time.
func (m *Metrics) TrackAuthEventsDropped(dropped func() int64) {
	m.registerer.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "caselookup_auth_events_dropped_total",
		Help: "Auth event deliveries skipped because a subscriber buffer was full",
	}, func() float64 { return float64(dropped()) }))
}

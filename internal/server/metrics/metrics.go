// Package metrics holds the Prometheus collectors of the server and the
// optional listener that exposes them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check outcomes used as the verdict label.
const (
	OutcomeAllowed    = "allowed"
	OutcomeDenied     = "denied"
	OutcomeBadRequest = "bad_request"
	OutcomeError      = "error"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ChecksTotal       *prometheus.CounterVec
	CheckDuration     prometheus.Histogram
	BindingsTotal     prometheus.Counter
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seekauth_check_total",
				Help: "Total number of check requests by outcome",
			},
			[]string{"verdict"},
		),
		CheckDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seekauth_check_duration_seconds",
				Help:    "Credential evaluation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		BindingsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seekauth_bindings_total",
				Help: "Total number of first-use machine bindings",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seekauth_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
	}

	registry.MustRegister(
		m.ChecksTotal,
		m.CheckDuration,
		m.BindingsTotal,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) ObserveCheck(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(outcome).Inc()
	m.CheckDuration.Observe(d.Seconds())
}

// CountCheck counts a check rejected before evaluation.
func (m *Metrics) CountCheck(outcome string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncBindings() {
	if m == nil {
		return
	}
	m.BindingsTotal.Inc()
}

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware counts requests by method and status.
func HTTPMetricsMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			m.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
		})
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

/*
Package metrics exposes Prometheus collectors for page rendering, backend API calls
and session checks, served on /metrics.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lancini_web"

// Session check outcomes.
const (
	SessionAuthenticated = "authenticated"
	SessionRejected      = "rejected"
	SessionSkipped       = "skipped"
)

// Metrics owns a private registry so that several instances (tests) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	pageDuration    *prometheus.HistogramVec
	backendDuration *prometheus.HistogramVec
	backendInFlight prometheus.Gauge
	sessionChecks   *prometheus.CounterVec
}

// New creates and registers all collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		pageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of page and API requests served by the frontend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls from the frontend to the backend API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
		backendInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_requests_in_flight",
			Help:      "Backend API calls currently in flight.",
		}),
		sessionChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_checks_total",
			Help:      "Session re-checks by outcome.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		m.pageDuration,
		m.backendDuration,
		m.backendInFlight,
		m.sessionChecks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware observes request latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.pageDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// InstrumentTransport wraps rt so that every backend call is counted and timed.
func (m *Metrics) InstrumentTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.backendInFlight,
		promhttp.InstrumentRoundTripperDuration(m.backendDuration, rt),
	)
}

// ObserveSessionCheck counts one session re-check outcome.
func (m *Metrics) ObserveSessionCheck(result string) {
	m.sessionChecks.WithLabelValues(result).Inc()
}

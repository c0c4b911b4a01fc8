package web

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one process. Each Metrics owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	simFrames         prometheus.Counter
	simRuns           *prometheus.CounterVec
	uploads           *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datadash_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datadash_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		simFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datadash_simulator_frames_total",
			Help: "Total simulator frames streamed to realtime clients.",
		}),
		simRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datadash_simulator_runs_total",
			Help: "Realtime simulator runs by outcome.",
		}, []string{"outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datadash_uploads_total",
			Help: "CSV uploads by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.simFrames,
		m.simRuns,
		m.uploads,
	)

	return m
}

// Middleware records count and latency per route template. Routes are
// labelled by template, not raw path, to keep cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		// CaptureMetrics keeps Hijacker intact for the websocket upgrade.
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(snoop.Code)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(snoop.Duration.Seconds())
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SimFrame counts one streamed frame.
func (m *Metrics) SimFrame() {
	if m == nil {
		return
	}
	m.simFrames.Inc()
}

// SimRun counts a finished realtime run.
func (m *Metrics) SimRun(outcome string) {
	if m == nil {
		return
	}
	m.simRuns.WithLabelValues(outcome).Inc()
}

// Upload counts one upload attempt.
func (m *Metrics) Upload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

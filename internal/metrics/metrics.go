// internal/metrics/metrics.go
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

// Metrics holds the service's Prometheus collectors on a private registry.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	broadcastWrites     prometheus.Counter
	walletRegistrations *prometheus.CounterVec
	viewsRecorded       prometheus.Counter
	viewsClaimed        prometheus.Counter
	requestDuration     *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		broadcastWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_writes_total",
			Help: "Number of broadcast create/replace writes.",
		}),
		walletRegistrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_registrations_total",
			Help: "Wallet connect calls by result (created or existing).",
		}, []string{"result"}),
		viewsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ad_views_recorded_total",
			Help: "Number of ad view records written.",
		}),
		viewsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ad_views_claimed_total",
			Help: "Number of ad views flipped to claimed.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	m.registry.MustRegister(
		m.broadcastWrites,
		m.walletRegistrations,
		m.viewsRecorded,
		m.viewsClaimed,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// BroadcastWritten counts a stored broadcast write.
func (m *Metrics) BroadcastWritten() {
	if m == nil {
		return
	}
	m.broadcastWrites.Inc()
}

// WalletRegistered counts a connect, labelled created or existing.
func (m *Metrics) WalletRegistered(created bool) {
	if m == nil {
		return
	}
	result := "existing"
	if created {
		result = "created"
	}
	m.walletRegistrations.WithLabelValues(result).Inc()
}

// ViewRecorded counts a stored ad view.
func (m *Metrics) ViewRecorded() {
	if m == nil {
		return
	}
	m.viewsRecorded.Inc()
}

// ViewClaimed counts a view's first claim.
func (m *Metrics) ViewClaimed() {
	if m == nil {
		return
	}
	m.viewsClaimed.Inc()
}

// Middleware observes request latency labelled with the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

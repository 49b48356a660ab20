package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the web front end.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	guardRedirects  *prometheus.CounterVec
	apiFailures     *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewMetrics registers the metrics on a private registry, so several apps
// can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "recipes",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Latency of HTTP requests",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		guardRedirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Subsystem: "guard",
				Name:      "redirects_total",
				Help:      "Navigations redirected by the route guard",
			},
			[]string{"decision"},
		),
		apiFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Subsystem: "api",
				Name:      "failures_total",
				Help:      "Failed calls to the recipes API",
			},
			[]string{"operation", "kind"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the login rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.guardRedirects,
		m.apiFailures,
		m.rateLimited,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) GuardRedirect(decision string) {
	m.guardRedirects.WithLabelValues(decision).Inc()
}

func (m *Metrics) APIFailure(operation, kind string) {
	m.apiFailures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

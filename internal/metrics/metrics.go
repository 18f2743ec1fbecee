// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paintpro"

// Email delivery results recorded by EmailsSent.
const (
	EmailDelivered     = "delivered"
	EmailRedirected    = "redirected"
	EmailFailed        = "failed"
	EmailNotConfigured = "not_configured"
)

type Metrics struct {
	registry *prometheus.Registry

	EstimatesSaved  *prometheus.CounterVec
	EmailsSent      *prometheus.CounterVec
	GeocodeLookups  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, including the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		EstimatesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_saved_total",
			Help:      "Submitted estimates by outcome (created or duplicate).",
		}, []string{"outcome"}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimate_emails_total",
			Help:      "Estimate email attempts by result.",
		}, []string{"result"}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Address suggestion lookups by result.",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.EstimatesSaved,
		m.EmailsSent,
		m.GeocodeLookups,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) EstimateSaved(created bool) {
	outcome := "created"
	if !created {
		outcome = "duplicate"
	}
	m.EstimatesSaved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EmailResult(result string) {
	m.EmailsSent.WithLabelValues(result).Inc()
}

func (m *Metrics) GeocodeResult(result string) {
	m.GeocodeLookups.WithLabelValues(result).Inc()
}

// Package metrics defines the Prometheus collectors of the helpdesk service
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	ResolutionsTotal     *prometheus.CounterVec
	RetrievedChunks      prometheus.Histogram
	GenerationDuration   *prometheus.HistogramVec
	GenerationFailures   *prometheus.CounterVec
	CacheHitsTotal       prometheus.Counter
	IndexedChunks        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdesk_resolutions_total",
				Help: "Answered queries by resolution source.",
			},
			[]string{"source"},
		),
		RetrievedChunks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "helpdesk_retrieved_chunks",
				Help:    "Number of chunks retrieved per query reaching retrieval.",
				Buckets: []float64{0, 1, 2, 3, 5, 10},
			},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "helpdesk_generation_duration_seconds",
				Help:    "Language model call latency in seconds.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider", "outcome"},
		),
		GenerationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdesk_generation_failures_total",
				Help: "Failed language model calls by failure kind.",
			},
			[]string{"kind"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpdesk_answer_cache_hits_total",
				Help: "Generated answers served from the cache.",
			},
		),
		IndexedChunks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "helpdesk_indexed_chunks",
				Help: "Number of corpus chunks in the lexical index.",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ResolutionsTotal,
		m.RetrievedChunks,
		m.GenerationDuration,
		m.GenerationFailures,
		m.CacheHitsTotal,
		m.IndexedChunks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

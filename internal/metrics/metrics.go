// Package metrics exposes Prometheus instrumentation for the HTTP layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choreboard_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "choreboard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Instrument wraps a handler with request count and latency collection.
func Instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(requestDuration,
		promhttp.InstrumentHandlerCounter(requestsTotal, next),
	)
}

// Handler serves the collected metrics for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshelf_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	BooksRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshelf_books_registered_total",
			Help: "Total number of books added to the catalog",
		},
	)

	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_ratings_submitted_total",
			Help: "Rating submissions by outcome",
		},
		[]string{"outcome"}, // accepted, rejected
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshelf_upstream_request_duration_seconds",
			Help:    "Duration of calls to external book services",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookshelf_circuit_breaker_state",
			Help: "Circuit breaker state per upstream (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service"},
	)

	SummaryRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_summary_refreshes_total",
			Help: "Summary refresh attempts by outcome",
		},
		[]string{"outcome"}, // updated, missing, failed
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRequest records one call to an external service.
func RecordUpstreamRequest(service string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
}

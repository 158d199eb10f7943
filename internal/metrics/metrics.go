// Package metrics provides Prometheus metrics for the news portal.
package metrics

import (
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route template.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsportal",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsportal",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SearchLookupsTotal counts federated search lookups per source.
	SearchLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsportal",
			Name:      "search_lookups_total",
			Help:      "Total number of search lookups",
		},
		[]string{"source", "outcome"},
	)

	// FallbackServedTotal counts views answered with the sample set.
	FallbackServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsportal",
			Name:      "fallback_served_total",
			Help:      "Total number of responses served from fallback data",
		},
		[]string{"view"},
	)

	// ImageUploadsTotal counts image uploads by outcome.
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsportal",
			Name:      "image_uploads_total",
			Help:      "Total number of article image uploads",
		},
		[]string{"outcome"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// RecordRequest records a completed HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordSearchLookup records one section of a federated search.
func RecordSearchLookup(source string, err error) {
	SearchLookupsTotal.WithLabelValues(source, outcome(err)).Inc()
}

// RecordFallback records a view answered with sample articles.
func RecordFallback(view string) {
	FallbackServedTotal.WithLabelValues(view).Inc()
}

// RecordUpload records an image upload attempt.
func RecordUpload(err error) {
	ImageUploadsTotal.WithLabelValues(outcome(err)).Inc()
}

// RegisterDBStats exposes the article store's connection pool statistics.
// Registering the same pool twice is a no-op.
func RegisterDBStats(db *sql.DB) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, "articles"))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration is labelled with the chi route pattern, not the raw
	// path, to keep cardinality bounded.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route", "status"},
	)

	// DocumentMutations counts successful read-modify-write cycles on project
	// and contact JSON columns.
	DocumentMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_mutations_total",
			Help: "Total number of JSON document mutations",
		},
		[]string{"column", "operation"},
	)

	ContactSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of public contact form submissions",
		},
	)

	PublicCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "public_cache_lookups_total",
			Help: "Public listing cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)

func RecordDocumentMutation(column, operation string) {
	DocumentMutations.WithLabelValues(column, operation).Inc()
}

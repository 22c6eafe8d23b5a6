package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errorTypeValidation = "validation"
	errorTypeCursor     = "cursor"
	errorTypeStore      = "store"
)

var (
	// RequestsTotal counts completed pagination requests.
	// Labels: direction (forward, backward)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_groups_pagination_requests_total",
			Help: "Total number of completed pagination requests",
		},
		[]string{"direction"},
	)

	// DurationSeconds tracks how long a paginated query takes end to end.
	DurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "post_groups_pagination_duration_seconds",
			Help:    "Paginated query duration distribution",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
	)

	// ErrorsTotal counts failed pagination requests.
	// Labels: type (validation, cursor, store)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_groups_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a completed pagination request.
func RecordRequest(dir Direction) {
	RequestsTotal.WithLabelValues(dir.String()).Inc()
}

// RecordDuration records query duration in seconds.
func RecordDuration(seconds float64) {
	DurationSeconds.Observe(seconds)
}

// RecordError records a failed request by error type.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

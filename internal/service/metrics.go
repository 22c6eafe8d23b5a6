package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeNotFound = "not_found"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

var (
	// approvalsTotal counts approval attempts.
	// Labels: outcome (SCHEDULED, PUBLISHED, not_found, conflict, error)
	approvalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_group_approvals_total",
			Help: "Total number of post group approvals by outcome",
		},
		[]string{"outcome"},
	)
)

func recordApproval(outcome string) {
	approvalsTotal.WithLabelValues(outcome).Inc()
}

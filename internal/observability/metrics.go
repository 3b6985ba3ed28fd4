// Package observability exposes Prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesSubmitted counts accepted vote submissions by result.
	VotesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veritas_votes_submitted_total",
		Help: "Total number of accepted vote submissions by result",
	}, []string{"result"})

	// VotesRejected counts rejected vote submissions by reason.
	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veritas_votes_rejected_total",
		Help: "Total number of rejected vote submissions by reason",
	}, []string{"reason"})

	// VotesInvalidated counts admin vote invalidations and restorations.
	VotesInvalidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veritas_votes_invalidated_total",
		Help: "Total number of admin vote invalidation operations",
	}, []string{"action"})

	// StatusTransitions counts news status changes produced by recalculation.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veritas_status_transitions_total",
		Help: "Total number of news status transitions by resulting status",
	}, []string{"status"})

	// RecalculationLatency records the latency of full recount-and-resolve runs.
	RecalculationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "veritas_recalculation_latency_seconds",
		Help:    "Latency of vote recount and status resolution in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veritas_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveRecalculation records the latency of one recalculation run.
func ObserveRecalculation(start time.Time) {
	RecalculationLatency.Observe(time.Since(start).Seconds())
}

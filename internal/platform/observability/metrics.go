// Package observability exposes prometheus metrics for the refinement
// pipeline and a small health/metrics HTTP listener for long-running
// batch jobs.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refinery_items_ingested_total",
		Help: "The total number of text items fed into the pipeline",
	})

	ItemsKept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refinery_items_kept_total",
		Help: "The total number of items surviving the full pipeline",
	})

	DropsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refinery_drops_total",
		Help: "Total number of dropped items by rejection reason",
	}, []string{"reason"})

	BatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refinery_batch_duration_seconds",
		Help:    "Duration in seconds of one full pipeline run",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	StageDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refinery_stage_duration_seconds",
		Help:    "Duration in seconds of individual pipeline stages",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	DuplicateGroups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refinery_duplicate_groups_total",
		Help: "Total number of multi-member equivalence groups by strategy",
	}, []string{"strategy"})

	VectorizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refinery_vectorize_requests_total",
		Help: "Total number of batch embedding requests by provider and status",
	}, []string{"provider", "status"})

	VectorizeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refinery_vectorize_latency_seconds",
		Help:    "Latency of batch embedding requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	VectorizerAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "refinery_vectorizer_available",
		Help: "Whether an embedding provider is currently available (1) or not (0)",
	}, []string{"provider"})
)

// Metric status constants.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordDrop counts one dropped item under a rejection reason.
func RecordDrop(reason string) {
	DropsTotal.WithLabelValues(reason).Inc()
}

// RecordVectorizeRequest records a batch embedding request outcome.
func RecordVectorizeRequest(provider string, success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}

	VectorizeRequests.WithLabelValues(provider, status).Inc()
}

// ObserveVectorizeLatency records batch embedding request latency.
func ObserveVectorizeLatency(provider string, duration time.Duration) {
	VectorizeLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// SetVectorizerAvailable sets a provider's availability gauge.
func SetVectorizerAvailable(provider string, available bool) {
	v := 0.0
	if available {
		v = 1
	}

	VectorizerAvailable.WithLabelValues(provider).Set(v)
}

// ObserveStage records the duration of one pipeline stage.
func ObserveStage(stage string, duration time.Duration) {
	StageDurationSeconds.WithLabelValues(stage).Observe(duration.Seconds())
}

package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records operation counts, latencies, and error rates for the
// command surface. It wraps a set of Prometheus collectors that callers
// register with their own registry.
type Metrics struct {
	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	archiveFailures  prometheus.Counter
}

// NewMetrics constructs the collector set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cargocore",
			Name:      "operations_total",
			Help:      "Total command-surface operations, partitioned by operation and outcome.",
		}, []string{"operation", "outcome"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cargocore",
			Name:      "operation_duration_seconds",
			Help:      "Command-surface operation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		archiveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cargocore",
			Name:      "manifest_archive_failures_total",
			Help:      "Undock manifests that failed to archive to blob storage.",
		}),
	}
	reg.MustRegister(m.operations, m.operationLatency, m.archiveFailures)
	return m
}

// ObserveOperation records the outcome and latency of a command-surface
// call, deriving outcome "ok" or "error" from err.
func (m *Metrics) ObserveOperation(op string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ObserveOutcome(op, outcome, elapsed)
}

// ObserveOutcome records an explicit outcome label for a command-surface
// call. Planners that recover locally from NoFit (§7) report "no_fit"
// here instead of the err-derived "ok"/"error" split, since returning no
// candidate is not itself an error.
func (m *Metrics) ObserveOutcome(op, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(op, outcome).Inc()
	m.operationLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RecordArchiveFailure increments the manifest-archive failure counter.
func (m *Metrics) RecordArchiveFailure() {
	m.archiveFailures.Inc()
}

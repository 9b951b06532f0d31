// Package metrics provides Prometheus metrics for engine activity.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exifd",
		Subsystem: "engine",
		Name:      "executions_total",
		Help:      "Total metadata operations by kind",
	}, []string{"operation"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exifd",
		Subsystem: "engine",
		Name:      "errors_total",
		Help:      "Total failed operations by error kind",
	}, []string{"kind"})

	workerRespawnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "exifd",
		Subsystem: "engine",
		Name:      "worker_respawns_total",
		Help:      "Total stay-open worker respawns after death or idle teardown",
	})

	stateTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exifd",
		Subsystem: "engine",
		Name:      "state_transitions_total",
		Help:      "Total worker state transitions by target state",
	}, []string{"state"})

	executionSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exifd",
		Subsystem: "engine",
		Name:      "execution_seconds",
		Help:      "Metadata operation latency in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"operation"})

	// Local cache so the health endpoint can report activity without
	// scraping the registry.
	snapshot   = EngineSnapshot{}
	snapshotMu sync.RWMutex
)

// EngineSnapshot holds current counter values for the health endpoint.
type EngineSnapshot struct {
	Executions int64
	Errors     int64
	Respawns   int64
}

// ObserveExecution records one completed operation with its latency.
func ObserveExecution(operation string, seconds float64) {
	executionsTotal.WithLabelValues(operation).Inc()
	executionSeconds.WithLabelValues(operation).Observe(seconds)
	updateSnapshot(func(s *EngineSnapshot) { s.Executions++ })
}

// ObserveError records one failed operation.
func ObserveError(kind string) {
	errorsTotal.WithLabelValues(kind).Inc()
	updateSnapshot(func(s *EngineSnapshot) { s.Errors++ })
}

// ObserveRespawn records a worker respawn.
func ObserveRespawn() {
	workerRespawnsTotal.Inc()
	updateSnapshot(func(s *EngineSnapshot) { s.Respawns++ })
}

// ObserveStateTransition records a worker state transition.
func ObserveStateTransition(state string) {
	stateTransitionsTotal.WithLabelValues(state).Inc()
}

// Snapshot returns a copy of the current counter values.
func Snapshot() EngineSnapshot {
	snapshotMu.RLock()
	defer snapshotMu.RUnlock()
	return snapshot
}

func updateSnapshot(update func(*EngineSnapshot)) {
	snapshotMu.Lock()
	defer snapshotMu.Unlock()
	update(&snapshot)
}

// HTTPHandler returns the Prometheus metrics HTTP handler.
// This collects all promauto-registered metrics automatically.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}

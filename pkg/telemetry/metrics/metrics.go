// Package metrics exposes the operational side channel for the exchange
// logger: counters for emitted records, swallowed store failures, and
// rotations. Failures inside the logging path are never surfaced to the
// request/response cycle, so these counters are the only place they
// become visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ganymede"

// Metrics holds the Prometheus collectors for the exchange logger.
type Metrics struct {
	registry *prometheus.Registry

	// recordsTotal counts emitted records by surface ("http", "rpc").
	recordsTotal *prometheus.CounterVec

	// storeErrorsTotal counts append/rotation I/O failures that were
	// swallowed rather than propagated.
	storeErrorsTotal prometheus.Counter

	// rotationsTotal counts log file truncations.
	rotationsTotal prometheus.Counter

	// chunksTotal counts parsed SSE chunks across streaming exchanges.
	chunksTotal prometheus.Counter
}

// New creates and registers the exchange-logger metrics. If registry is
// nil a private registry is created.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Total number of exchange records emitted",
			},
			[]string{"kind"},
		),
		storeErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of swallowed log store I/O failures",
			},
		),
		rotationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rotations_total",
				Help:      "Total number of log file rotations",
			},
		),
		chunksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sse_chunks_total",
				Help:      "Total number of parsed SSE chunks",
			},
		),
	}

	registry.MustRegister(
		m.recordsTotal,
		m.storeErrorsTotal,
		m.rotationsTotal,
		m.chunksTotal,
	)

	return m
}

// Registry returns the registry the metrics are registered with, for
// mounting an exposition endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordEmitted counts one emitted record. Nil-safe so callers can run
// with metrics disabled.
func (m *Metrics) RecordEmitted(kind string) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues(kind).Inc()
}

// StoreError counts one swallowed store failure.
func (m *Metrics) StoreError() {
	if m == nil {
		return
	}
	m.storeErrorsTotal.Inc()
}

// Rotation counts one log file truncation.
func (m *Metrics) Rotation() {
	if m == nil {
		return
	}
	m.rotationsTotal.Inc()
}

// ChunksParsed counts parsed SSE chunks.
func (m *Metrics) ChunksParsed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.chunksTotal.Add(float64(n))
}

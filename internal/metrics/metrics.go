// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package metrics instruments the stores with Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quixsi/glossa/internal/model"
)

type Metrics struct {
	// StoreOperations counts store calls by store, operation and result.
	StoreOperations *prometheus.CounterVec
	// StoreLatency tracks the latency of store calls.
	StoreLatency *prometheus.HistogramVec
	// Resolutions counts resolver lookups by kind, language and outcome.
	Resolutions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glossa",
				Name:      "store_operations_total",
				Help:      "Total number of store operations by store, operation and result",
			},
			[]string{"store", "operation", "result"},
		),
		StoreLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "glossa",
				Name:      "store_operation_duration_seconds",
				Help:      "Latency of store operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"store", "operation"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glossa",
				Name:      "resolutions_total",
				Help:      "Total number of localized lookups by kind, language and outcome",
			},
			[]string{"kind", "language", "outcome"},
		),
	}
	reg.MustRegister(m.StoreOperations, m.StoreLatency, m.Resolutions)
	return m
}

func (m *Metrics) observe(store, op string, start time.Time, err error) {
	m.StoreOperations.WithLabelValues(store, op, Result(err)).Inc()
	m.StoreLatency.WithLabelValues(store, op).Observe(time.Since(start).Seconds())
}

// Resolved records the outcome of one resolver lookup.
func (m *Metrics) Resolved(kind string, lang model.Language, found bool) {
	outcome := "absent"
	if found {
		outcome = "found"
	}
	m.Resolutions.WithLabelValues(kind, lang.String(), outcome).Inc()
}

// Result maps an error to a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	case errors.Is(err, model.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, model.ErrCorruption):
		return "corruption"
	default:
		return "error"
	}
}

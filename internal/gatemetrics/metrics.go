// Package gatemetrics provides Prometheus instrumentation for the engine
// admission and generation path.
package gatemetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationDuration tracks wall-clock duration of blocking generate calls.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "llamagate",
			Subsystem: "engine",
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock duration of blocking engine generation calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// GenerationInflight is the number of generations currently executing.
	// The admission gate guarantees this never exceeds 1.
	GenerationInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "llamagate",
			Subsystem: "engine",
			Name:      "generation_inflight",
			Help:      "Generations currently executing (at most 1 by design).",
		},
	)

	// CompletionsTotal counts completion requests by outcome.
	CompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llamagate",
			Subsystem: "engine",
			Name:      "completions_total",
			Help:      "Completion requests by outcome.",
		},
		[]string{"outcome"}, // ok, invalid, unavailable, error
	)

	// LoadDurationSeconds records how long the model took to load at startup.
	LoadDurationSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "llamagate",
			Subsystem: "engine",
			Name:      "load_duration_seconds",
			Help:      "Duration of the model load performed at startup.",
		},
	)

	// Loaded reports whether a model is currently loaded (1) or absent (0).
	Loaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "llamagate",
			Subsystem: "engine",
			Name:      "loaded",
			Help:      "Whether a model is currently loaded.",
		},
	)
)

// Outcome labels for CompletionsTotal.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

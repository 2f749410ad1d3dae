package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuecard_generations_total",
		Help: "Card submissions by outcome (parsed, parse_failed, generation_failed, invalid, not_configured).",
	}, []string{"outcome"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cuecard_generation_duration_seconds",
		Help:    "Time spent waiting on the model provider.",
		Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
	})

	CueLinesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuecard_cue_lines_dropped_total",
		Help: "Lines in the cues section that did not match the cue format.",
	})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuecard_exports_total",
		Help: "Card image exports by status.",
	}, []string{"status"})

	EventsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuecard_events_recorded_total",
		Help: "Generation events written to the database.",
	})

	EventsRecordErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuecard_events_record_errors_total",
		Help: "Generation event insert failures.",
	})
)

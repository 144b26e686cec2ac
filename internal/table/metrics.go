package table

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	narrationTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fireside_narration_turns_total",
			Help: "Narration turns processed, by outcome.",
		},
		[]string{"status"}, // ok | fallback
	)
	narrationTurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fireside_narration_turn_duration_seconds",
			Help:    "Wall-clock duration of narration engine turn calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
	votesResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fireside_votes_resolved_total",
			Help: "Votes resolved, by trigger.",
		},
		[]string{"kind", "trigger"}, // trigger: turnout | timeout
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_rank_requests_total",
			Help: "Total ranking requests by target kind and outcome",
		},
		[]string{"kind", "status"},
	)

	RankCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_rank_cache_hits_total",
			Help: "Ranking requests served from the result cache",
		},
		[]string{"kind"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_scoring_duration_seconds",
			Help: "Time spent fetching and scoring candidates per ranking pass",
		},
		[]string{"kind"},
	)

	CompletenessRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_completeness_requests_total",
			Help: "Profile completeness computations by record kind",
		},
		[]string{"kind"},
	)
)

package dating

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_match_searches_total",
			Help: "Total number of match searches",
		},
		[]string{"outcome"},
	)

	candidatesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_candidates_evaluated_total",
			Help: "Total number of candidates run through the eligibility rules",
		},
	)

	candidatesExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_candidates_excluded_total",
			Help: "Candidates removed by a hard rule",
		},
		[]string{"reason"},
	)

	candidatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_candidates_skipped_total",
			Help: "Malformed candidate records skipped during screening",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dating_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_recommendations_total",
			Help: "Smart recommendations returned, by relaxed dimension",
		},
		[]string{"dimension"},
	)

	pipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dating_pipeline_duration_seconds",
			Help:    "Time spent filtering, scoring and ranking",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func RecordSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

func RecordScreening(evaluated int, report FilterReport) {
	candidatesEvaluated.Add(float64(evaluated))
	for reason, n := range report.Excluded {
		candidatesExcluded.WithLabelValues(string(reason)).Add(float64(n))
	}
	if report.Skipped > 0 {
		candidatesSkipped.Add(float64(report.Skipped))
	}
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

func RecordRecommendation(dim Dimension) {
	recommendationsTotal.WithLabelValues(string(dim)).Inc()
}

func RecordPipelineDuration(operation string, duration time.Duration) {
	pipelineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Package metrics provides Prometheus collectors for the decision engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "optimizer"

// Outcome label values for DecisionsTotal.
const (
	OutcomeSolved   = "solved"
	OutcomeRejected = "rejected"
)

// Surface label values for DecisionsTotal. Caller supplied sources are not
// used as labels.
const (
	SurfaceAPI     = "api"
	SurfaceCSV     = "csv"
	SurfaceHermes  = "hermes"
	SurfaceUnknown = "unknown"
)

// SurfaceLabel maps s onto the fixed set of surface labels.
func SurfaceLabel(s string) string {
	switch s {
	case SurfaceAPI, SurfaceCSV, SurfaceHermes:
		return s
	default:
		return SurfaceUnknown
	}
}

type Metrics struct {
	DecisionsTotal *prometheus.CounterVec
	SolveDuration  prometheus.Histogram
	Alternatives   prometheus.Histogram
	Criteria       prometheus.Histogram
	EventsFailed   prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// to expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Problems submitted, by surface and outcome",
		}, []string{"surface", "outcome"}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent defining and solving a problem",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		Alternatives: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "problem_alternatives",
			Help:      "Number of alternatives per solved problem",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Criteria: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "problem_criteria",
			Help:      "Number of criteria per solved problem",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		EventsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Decision events that could not be published",
		}),
	}
}

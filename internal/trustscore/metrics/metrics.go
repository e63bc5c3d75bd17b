// Package metrics instruments trust score evaluations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks evaluation outcomes and score distributions. All methods are
// nil-safe so services can run without instrumentation in tests.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Scores      *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trustscore_evaluations_total",
			Help: "Trust score evaluations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Scores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustscore_score",
			Help:    "Distribution of computed sub-scores by kind.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncrementEvaluation(kind, outcome string) {
	if m == nil || m.Evaluations == nil {
		return
	}
	m.Evaluations.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveScore(kind string, score int) {
	if m == nil || m.Scores == nil {
		return
	}
	m.Scores.WithLabelValues(kind).Observe(float64(score))
}

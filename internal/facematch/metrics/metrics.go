// Package metrics instruments face match evaluations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts face comparison verdicts. Methods are nil-safe.
type Metrics struct {
	Verdicts *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "facematch_verdicts_total",
			Help: "Face comparison verdicts by outcome.",
		}, []string{"verdict"}),
	}
}

func (m *Metrics) IncrementVerdict(verdict string) {
	if m == nil || m.Verdicts == nil {
		return
	}
	m.Verdicts.WithLabelValues(verdict).Inc()
}

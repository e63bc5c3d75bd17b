// Package metrics holds cross-cutting Prometheus metrics. Module-specific
// metrics live next to their module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds application-level Prometheus metrics.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	UpstreamErrors *prometheus.CounterVec
}

// New creates and registers all application-level metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustbridge_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "status"}),

		UpstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustbridge_upstream_errors_total",
			Help: "Failures from external collaborators by upstream name",
		}, []string{"upstream"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// IncrementUpstreamError records a failure talking to an external service.
func (m *Metrics) IncrementUpstreamError(upstream string) {
	if m != nil {
		m.UpstreamErrors.WithLabelValues(upstream).Inc()
	}
}

package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers generation metrics on reg. A nil reg gets a private
// registry so repeated construction in tests does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronicle_generation_requests_total",
				Help: "Generation calls partitioned by operation and outcome status.",
			},
			[]string{"operation", "status"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chronicle_generation_duration_seconds",
				Help:    "Latency of generation calls.",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
			[]string{"operation"},
		),
	}
}

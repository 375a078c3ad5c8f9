package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	checks   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darwinsheet_checks_total",
			Help: "The total number of checked sample logs by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "darwinsheet_check_duration_seconds",
			Help:    "Time spent loading and checking a sample log",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.checks, m.duration)
	return m
}

func (m *metrics) observe(result string, d time.Duration) {
	m.checks.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}

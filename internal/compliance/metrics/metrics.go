package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ChecksTotal  *prometheus.CounterVec
	CheckLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimgate_compliance_checks_total",
			Help: "Total number of compliance checks by operation and outcome",
		}, []string{"operation", "outcome"}),
		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claimgate_compliance_check_duration_seconds",
			Help:    "Duration of compliance checks in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementChecks(operation, outcome string) {
	m.ChecksTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	m.CheckLatency.Observe(d.Seconds())
}

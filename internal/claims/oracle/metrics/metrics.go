package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsTotal    *prometheus.CounterVec
	ReplaysBlockedTotal prometheus.Counter
	SubmitLatency       prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimgate_oracle_submissions_total",
			Help: "Total number of claim submissions by outcome",
		}, []string{"outcome"}),
		ReplaysBlockedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimgate_oracle_replays_blocked_total",
			Help: "Total number of submissions rejected as proof replays",
		}),
		SubmitLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claimgate_oracle_submit_duration_seconds",
			Help:    "Duration of claim submissions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementSubmissions(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementReplaysBlocked() {
	m.ReplaysBlockedTotal.Inc()
}

func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	m.SubmitLatency.Observe(d.Seconds())
}

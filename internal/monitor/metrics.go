package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the goal monitor.
type Metrics struct {
	fired        *prometheus.CounterVec
	failures     *prometheus.CounterVec
	tickDuration prometheus.Histogram
	latches      prometheus.Gauge
}

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// defaultMetrics returns collectors registered once with the global registry.
func defaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics registers the monitor collectors with reg and panics on a
// registration error. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energy",
			Subsystem: "monitor",
			Name:      "notifications_total",
			Help:      "Goal milestone notifications created.",
		}, []string{"goal_type", "milestone"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energy",
			Subsystem: "monitor",
			Name:      "notification_failures_total",
			Help:      "Goal milestone notifications that could not be created.",
		}, []string{"goal_type"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "energy",
			Subsystem: "monitor",
			Name:      "tick_duration_seconds",
			Help:      "Time spent checking all accounts in one tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		latches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "energy",
			Subsystem: "monitor",
			Name:      "milestone_latches",
			Help:      "Milestones latched since the process started.",
		}),
	}
	reg.MustRegister(m.fired, m.failures, m.tickDuration, m.latches)
	return m
}

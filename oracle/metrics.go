package oracle

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the oracle's Prometheus instrumentation: one counter
// per gating verdict (so an operator can see admit/no-UI/block rates
// drift over a deploy) and a histogram for vision call latency, which
// is the pipeline's dominant cost when it's exercised.
type Metrics struct {
	VerdictsTotal  *prometheus.CounterVec
	VisionLatency  prometheus.Histogram
	AnalysesTotal  prometheus.Counter
}

// NewMetrics registers the oracle's metrics against reg. Pass
// prometheus.NewRegistry() for test isolation, or
// prometheus.DefaultRegisterer in production.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		VerdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ga4oracle",
			Name:      "gating_verdicts_total",
			Help:      "Count of gating verdicts produced, by verdict and stage.",
		}, []string{"verdict", "stage"}),
		VisionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ga4oracle",
			Name:      "vision_call_duration_seconds",
			Help:      "Latency of vision service Analyze calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ga4oracle",
			Name:      "analyses_total",
			Help:      "Count of completed page analyses.",
		}),
	}
	reg.MustRegister(m.VerdictsTotal, m.VisionLatency, m.AnalysesTotal)
	return m
}

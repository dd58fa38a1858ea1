package orchestration

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments this service exposes on
// GET /metrics, grounded on BaSui01-agentflow's direct dependency on
// prometheus/client_golang.
type Metrics struct {
	routingDecisions *prometheus.CounterVec
	healthCheckLatency *prometheus.HistogramVec
	dispatchOutcomes  *prometheus.CounterVec
}

// NewMetrics registers the orchestration instruments against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		routingDecisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_routing_decisions_total",
			Help: "Number of routing decisions by chosen provider.",
		}, []string{"provider"}),
		healthCheckLatency: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orchestrator_health_check_latency_seconds",
			Help:    "Latency of provider health probes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		dispatchOutcomes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_dispatch_outcomes_total",
			Help: "Number of dispatch attempts by outcome class.",
		}, []string{"outcome"}),
	}
	return m
}

func (m *Metrics) recordRouting(provider string) {
	m.routingDecisions.WithLabelValues(provider).Inc()
}

func (m *Metrics) recordHealthLatency(provider string, seconds float64) {
	m.healthCheckLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) recordDispatch(outcome string) {
	m.dispatchOutcomes.WithLabelValues(outcome).Inc()
}

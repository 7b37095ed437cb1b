package metrics

import (
	"time"

	"knowledge-assistant-be/pkg/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "knowledge_assistant"

// PipelineMetrics exposes pipeline activity on a private registry
type PipelineMetrics struct {
	registry            *prometheus.Registry
	queries             *prometheus.CounterVec
	fallbacks           prometheus.Counter
	emptyRetrievals     prometheus.Counter
	persistenceFailures *prometheus.CounterVec
	latency             prometheus.Histogram
}

func NewPipelineMetrics() *PipelineMetrics {
	reg := prometheus.NewRegistry()
	m := &PipelineMetrics{
		registry: reg,
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Answered queries by intent and confidence level.",
		}, []string{"intent", "confidence"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Answers escalated to a human.",
		}),
		emptyRetrievals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_retrievals_total",
			Help:      "Queries answered without any authorized document.",
		}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Swallowed conversation, audit and ticket write failures.",
		}, []string{"operation"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "End to end pipeline latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}

	reg.MustRegister(
		m.queries,
		m.fallbacks,
		m.emptyRetrievals,
		m.persistenceFailures,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *PipelineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PipelineMetrics) ObserveQuery(intent string, level store.ConfidenceLevel, fallback bool, docs int, elapsed time.Duration) {
	m.queries.WithLabelValues(intent, string(level)).Inc()
	if fallback {
		m.fallbacks.Inc()
	}
	if docs == 0 {
		m.emptyRetrievals.Inc()
	}
	m.latency.Observe(elapsed.Seconds())
}

func (m *PipelineMetrics) ObservePersistenceFailure(operation string) {
	m.persistenceFailures.WithLabelValues(operation).Inc()
}

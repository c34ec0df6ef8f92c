package handlers

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service-level counters. All methods are nil-safe so
// tests can pass a nil *Metrics.
type Metrics struct {
	CollectRuns      *prometheus.CounterVec
	ArticlesInserted *prometheus.CounterVec
	PredictRuns      *prometheus.CounterVec
	LLMCallDuration  *prometheus.HistogramVec
}

func (m *Metrics) IncCollectRun(status string) {
	if m == nil || m.CollectRuns == nil {
		return
	}
	m.CollectRuns.WithLabelValues(status).Inc()
}

func (m *Metrics) AddArticlesInserted(n int) {
	if m == nil || m.ArticlesInserted == nil {
		return
	}
	m.ArticlesInserted.WithLabelValues().Add(float64(n))
}

func (m *Metrics) IncPredictRun(outcome string) {
	if m == nil || m.PredictRuns == nil {
		return
	}
	m.PredictRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLLMCall(model string, seconds float64) {
	if m == nil || m.LLMCallDuration == nil {
		return
	}
	m.LLMCallDuration.WithLabelValues(model).Observe(seconds)
}

package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for tool calls.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeRemoteError = "remote_error"
)

// Metrics contains all Prometheus metrics for the MCP service.
type Metrics struct {
	ToolCalls        *prometheus.CounterVec
	ValidationReject *prometheus.CounterVec
	RemoteLatencyMs  *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dextools_tool_calls_total",
			Help: "Total number of tool invocations by tool and outcome",
		}, []string{"tool", "outcome"}),

		ValidationReject: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dextools_validation_rejects_total",
			Help: "Tool invocations rejected before reaching the API, by reason",
		}, []string{"tool", "reason"}),

		// Remote call latency
		RemoteLatencyMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dextools_remote_latency_ms",
			Help:    "Latency of DEXTools API calls in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"tool"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dextools_cache_lookups_total",
			Help: "Response cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
	}
}

// RecordToolCall increments the call counter for a tool.
func (m *Metrics) RecordToolCall(tool, outcome string) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordRejection counts a validation failure.
func (m *Metrics) RecordRejection(tool, reason string) {
	if m == nil {
		return
	}
	m.ValidationReject.WithLabelValues(tool, reason).Inc()
}

// RecordRemoteLatency records the duration of one API call.
func (m *Metrics) RecordRemoteLatency(tool string, latencyMs float64) {
	if m == nil {
		return
	}
	m.RemoteLatencyMs.WithLabelValues(tool).Observe(latencyMs)
}

// RecordCacheLookup counts a cache hit, miss or error.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	ProxyRequests    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamErrors   *prometheus.CounterVec
	AuditEvents      *prometheus.CounterVec
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProxyRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rbconsole_proxy_requests_total",
			Help: "Requests served by the gateway, by route template and final status",
		}, []string{"route", "method", "status"}),
		UpstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rbconsole_proxy_upstream_duration_seconds",
			Help:    "Time spent waiting on the compliance API",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route"}),
		UpstreamErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rbconsole_proxy_upstream_errors_total",
			Help: "Upstream calls that failed before a response was received",
		}, []string{"route"}),
		AuditEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rbconsole_audit_events_total",
			Help: "Audit events handed to a sink, by outcome",
		}, []string{"sink", "outcome"}),
	}
}

// IncrementProxyRequest records one served request.
func (m *Metrics) IncrementProxyRequest(route, method string, status int) {
	m.ProxyRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the duration of an upstream call.
// Call with time.Now() taken before the call.
func (m *Metrics) ObserveUpstream(route string, start time.Time) {
	m.UpstreamDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// IncrementUpstreamError records a transport-level upstream failure.
func (m *Metrics) IncrementUpstreamError(route string) {
	m.UpstreamErrors.WithLabelValues(route).Inc()
}

// IncrementAuditEvent records an audit emission; outcome is "ok", "error" or "dropped".
func (m *Metrics) IncrementAuditEvent(sink, outcome string) {
	m.AuditEvents.WithLabelValues(sink, outcome).Inc()
}

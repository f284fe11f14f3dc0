package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the relay counters on a private registry, so several
// gateways (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	sent     prometheus.Counter
	failures *prometheus.CounterVec
	updates  prometheus.Counter
}

// NewMetrics creates the counters along with the Go runtime and process
// collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tgrelay",
			Name:      "messages_sent_total",
			Help:      "Messages relayed to the Bot API.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tgrelay",
			Name:      "send_failures_total",
			Help:      "Relay requests that did not produce a message, by reason.",
		}, []string{"reason"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tgrelay",
			Name:      "updates_received_total",
			Help:      "Updates received by the long poller.",
		}),
	}
	m.registry.MustRegister(
		m.sent,
		m.failures,
		m.updates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordSent counts a relayed message.
func (m *Metrics) RecordSent() { m.sent.Inc() }

// RecordFailure counts a failed relay request. reason is "bad_request",
// "unauthorized" or "upstream".
func (m *Metrics) RecordFailure(reason string) { m.failures.WithLabelValues(reason).Inc() }

// RecordUpdate counts an update received by the poller.
func (m *Metrics) RecordUpdate() { m.updates.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

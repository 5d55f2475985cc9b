// Package metrics holds the Prometheus collectors for outbound provider
// calls. Collectors are registered on a caller-supplied registry so tests
// can use a fresh one.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

// Provider records provider call counts and latencies by operation.
type Provider struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewProvider creates and registers the provider collectors on reg.
func NewProvider(reg prometheus.Registerer) *Provider {
	p := &Provider{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "readalong",
			Name:      "provider_requests_total",
			Help:      "Outbound AI provider calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "readalong",
			Name:      "provider_request_seconds",
			Help:      "Latency of outbound AI provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"operation"}),
	}
	reg.MustRegister(p.requests, p.latency)
	return p
}

// Observe records one provider call. A nil *Provider is a no-op.
func (p *Provider) Observe(operation, outcome string, took time.Duration) {
	if p == nil {
		return
	}
	p.requests.WithLabelValues(operation, outcome).Inc()
	p.latency.WithLabelValues(operation).Observe(took.Seconds())
}

// Handler serves the metrics gathered from g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

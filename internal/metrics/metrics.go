// Package metrics owns the browser's Prometheus collectors. Everything is
// registered on a private registry so embedding hosts and tests never fight
// over the global one; the serve command exposes it on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes for the nova_document_loads_total counter.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics bundles the collectors. All record methods are safe on a nil
// receiver so instrumentation can be left unwired.
type Metrics struct {
	registry *prometheus.Registry

	parseSeconds  prometheus.Histogram
	renderSeconds prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	loads         *prometheus.CounterVec
}

// New builds and registers the collector set on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		parseSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "nova_document_parse_seconds",
			Help: "Time spent parsing documents.",
		}),
		renderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "nova_render_seconds",
			Help: "Time spent rendering layout trees.",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "nova_fetch_cache_hits_total",
			Help: "Fetches served from the document cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "nova_fetch_cache_misses_total",
			Help: "Fetches that went out to the network.",
		}),
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nova_document_loads_total",
			Help: "Document loads by outcome.",
		}, []string{"outcome"}),
	}
}

// Registry exposes the private registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RenderObserver returns the render-duration observer, or nil when metrics
// are unwired.
func (m *Metrics) RenderObserver() prometheus.Observer {
	if m == nil {
		return nil
	}
	return m.renderSeconds
}

// ObserveParse records the duration a parse took.
func (m *Metrics) ObserveParse(d time.Duration) {
	if m == nil {
		return
	}
	m.parseSeconds.Observe(d.Seconds())
}

// CacheHit counts a fetch served from cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss counts a fetch that went to the network.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// LoadOutcome counts a document load under the given outcome label.
func (m *Metrics) LoadOutcome(outcome string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
}

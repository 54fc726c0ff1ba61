// Package monitoring provides Prometheus metrics for the discovery and
// interaction paths. Because catalog reads fail closed, the counters here
// are the only place swallowed failures stay visible.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application metric instruments
type Metrics struct {
	registry *prometheus.Registry

	searchesTotal       *prometheus.CounterVec
	catalogFailures     *prometheus.CounterVec
	toggleRollbacks     *prometheus.CounterVec
	staleResultsDropped prometheus.Counter
	assistantFallbacks  prometheus.Counter
}

// NewMetrics creates the metric instruments on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		searchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipewhirl_searches_total",
				Help: "Search pipeline invocations by mode",
			},
			[]string{"mode"},
		),
		catalogFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipewhirl_catalog_failures_total",
				Help: "Catalog read failures folded into empty results",
			},
			[]string{"operation"},
		),
		toggleRollbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipewhirl_toggle_rollbacks_total",
				Help: "Optimistic toggles rolled back after a remote failure",
			},
			[]string{"kind"},
		),
		staleResultsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipewhirl_stale_results_dropped_total",
				Help: "Search result sets discarded by the generation check",
			},
		),
		assistantFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipewhirl_assistant_fallbacks_total",
				Help: "Assistant responses replaced by the static fallback",
			},
		),
	}
}

// SearchStarted counts a pipeline invocation ("random" or "query" mode)
func (m *Metrics) SearchStarted(mode string) {
	m.searchesTotal.WithLabelValues(mode).Inc()
}

// CatalogFailure counts a swallowed catalog read failure
func (m *Metrics) CatalogFailure(operation string) {
	m.catalogFailures.WithLabelValues(operation).Inc()
}

// ToggleRollback counts an optimistic rollback for a relationship kind
func (m *Metrics) ToggleRollback(kind string) {
	m.toggleRollbacks.WithLabelValues(kind).Inc()
}

// StaleResultDropped counts a result set rejected as stale
func (m *Metrics) StaleResultDropped() {
	m.staleResultsDropped.Inc()
}

// AssistantFallback counts a fallback assistant response
func (m *Metrics) AssistantFallback() {
	m.assistantFallbacks.Inc()
}

// Handler returns the scrape endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

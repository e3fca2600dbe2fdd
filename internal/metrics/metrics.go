// Package metrics provides the centralized Prometheus metrics registry for MatchSense.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GenerationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "generation_runs_total",
		Help:      "Total number of bet generation runs by outcome",
	}, []string{"outcome"})
	FixturesFetchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "fixtures_fetched_total",
		Help:      "Total number of fixtures fetched from the provider",
	})
	FixturesEnrichedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "fixtures_enriched_total",
		Help:      "Total number of fixtures successfully enriched",
	})
	FixturesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "fixtures_dropped_total",
		Help:      "Total number of fixtures dropped during enrichment",
	})
	MarketsScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "markets_scored_total",
		Help:      "Total number of fixture markets scored",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "provider_requests_total",
		Help:      "Total number of provider API requests by endpoint",
	}, []string{"endpoint"})
	ProviderErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "provider_errors_total",
		Help:      "Total number of failed provider API requests by endpoint",
	}, []string{"endpoint"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchsense",
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses",
	})
)

// Gauge metrics
var (
	LastRunScoredMarkets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchsense",
		Name:      "last_run_scored_markets",
		Help:      "Number of scored markets produced by the most recent run",
	})
	LastRunSlips = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchsense",
		Name:      "last_run_slips",
		Help:      "Number of non-null slips produced by the most recent run",
	})
)

// Histogram metrics
var (
	GenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchsense",
		Name:      "generation_duration_seconds",
		Help:      "Duration of full bet generation runs in seconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	EnrichmentDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchsense",
		Name:      "enrichment_duration_seconds",
		Help:      "Duration of per-fixture enrichment in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GenerationRunsTotal)
		registry.MustRegister(FixturesFetchedTotal)
		registry.MustRegister(FixturesEnrichedTotal)
		registry.MustRegister(FixturesDroppedTotal)
		registry.MustRegister(MarketsScoredTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(ProviderErrorsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		registry.MustRegister(LastRunScoredMarkets)
		registry.MustRegister(LastRunSlips)

		registry.MustRegister(GenerationDuration)
		registry.MustRegister(EnrichmentDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

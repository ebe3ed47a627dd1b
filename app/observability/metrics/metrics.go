package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GuideRequestsTotal      metric.Int64Counter
	GuideDurationSeconds    metric.Float64Histogram
	CacheHitsTotal          metric.Int64Counter
	CacheMissesTotal        metric.Int64Counter
	EnrichmentOutcomesTotal metric.Int64Counter
	FetcherFallbacksTotal   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Get returns the process-wide metric instruments, creating them on first use
// from the global MeterProvider. Before the provider is configured the
// instruments are no-ops, which keeps tests free of metrics plumbing.
func Get() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelRoulette")
		var err error
		m := &AppMetrics{}

		m.GuideRequestsTotal, err = meter.Int64Counter(
			"guide_requests_total",
			metric.WithDescription("Total number of guide generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create guide_requests_total: %v", err)
		}

		m.GuideDurationSeconds, err = meter.Float64Histogram(
			"guide_duration_seconds",
			metric.WithDescription("Duration of guide assembly in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create guide_duration_seconds: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"enrichment_cache_hits_total",
			metric.WithDescription("Total number of enrichment cache hits"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_cache_hits_total: %v", err)
		}

		m.CacheMissesTotal, err = meter.Int64Counter(
			"enrichment_cache_misses_total",
			metric.WithDescription("Total number of enrichment cache misses, stale entries included"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_cache_misses_total: %v", err)
		}

		m.EnrichmentOutcomesTotal, err = meter.Int64Counter(
			"enrichment_outcomes_total",
			metric.WithDescription("Enrichment invocations by terminal outcome"),
			metric.WithUnit("{invocation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_outcomes_total: %v", err)
		}

		m.FetcherFallbacksTotal, err = meter.Int64Counter(
			"map_fetcher_fallbacks_total",
			metric.WithDescription("Guide assemblies that substituted static map data"),
			metric.WithUnit("{assembly}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create map_fetcher_fallbacks_total: %v", err)
		}

		appMetrics = m
	})
	return appMetrics
}

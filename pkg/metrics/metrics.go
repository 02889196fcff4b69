// Package metrics is the reference for the Prometheus metrics exported by
// the Cuentica client. Metrics are defined in their own packages (client,
// cache, ratelimit) and registered via promauto on the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the client.
var Registry = prometheus.DefaultRegisterer

// Gatherer reads back the metrics in Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the registered metrics in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metric names, grouped by the package that defines them.
const (
	// pkg/client
	RequestsTotal   = "cuentica_requests_total"           // Counter{resource, status}
	RequestDuration = "cuentica_request_duration_seconds" // Histogram{resource}
	ErrorsTotal     = "cuentica_errors_total"             // Counter{class}

	// pkg/cache
	CacheHits        = "cuentica_cache_hits_total"        // Counter
	CacheMisses      = "cuentica_cache_misses_total"      // Counter
	CacheInvalidated = "cuentica_cache_invalidated_total" // Counter{reason}
	CacheEntries     = "cuentica_cache_entries"           // Gauge

	// pkg/ratelimit
	WindowRequests = "cuentica_ratelimit_window_requests" // Gauge
	DailyRequests  = "cuentica_ratelimit_daily_requests"  // Gauge
	RateLimited    = "cuentica_rate_limited_total"        // Counter
)

// Example Prometheus Queries:
//
//	# Cache Hit Rate
//	sum(rate(cuentica_cache_hits_total[5m])) /
//	(sum(rate(cuentica_cache_hits_total[5m])) + sum(rate(cuentica_cache_misses_total[5m])))
//
//	# Window budget above 80%
//	cuentica_ratelimit_window_requests > 480
//
//	# Request Error Rate by class
//	sum by (class) (rate(cuentica_errors_total[5m]))
//
//	# P95 Request Latency
//	histogram_quantile(0.95, rate(cuentica_request_duration_seconds_bucket[5m]))

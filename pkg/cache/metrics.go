package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cuentica_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	// CacheMisses tracks cache misses, including reads of expired entries
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cuentica_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheInvalidated tracks removed entries by reason
	CacheInvalidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cuentica_cache_invalidated_total",
			Help: "Total number of cache entries removed",
		},
		[]string{"reason"}, // "delete", "prefix", "clear", "expired"
	)

	// CacheEntries tracks live entries after the last write
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cuentica_cache_entries",
			Help: "Current number of entries in the response cache",
		},
	)
)

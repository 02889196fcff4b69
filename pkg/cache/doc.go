// Package cache provides the in-process response cache used by the Cuentica
// client.
//
// The store keeps decoded API responses for a bounded time and supports:
//
// - TTL expiry, checked lazily on read and swept fully on Stats
// - Prefix invalidation by resource name (customer, invoice, ...)
// - Deterministic cache keys built from path and query parameters
// - A TTL policy that keeps slow-changing data (company, tags) longer
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	store := cache.NewStore(cache.DefaultConfig())
//
//	key := cache.KeyFor("/customer", map[string]any{"page": 1, "q": nil})
//	// key == "customer?page=1"
//
//	if v, ok := store.Get(key); ok {
//		// served from memory
//	}
//	store.Set(key, value, store.TTLFor("/customer"))
//
// # Invalidation
//
// Writes are not observed by the store. Code that mutates a resource must
// call Invalidate with the singular resource prefix, and Delete for the
// exact entity key:
//
//	store.Invalidate(cache.PrefixCustomer)
//	store.Delete("customer/42")
//
// A prefix that does not match the path segment used in keys (for example
// "customers") silently removes nothing.
//
// # Metrics
//
//   - cuentica_cache_hits_total - Cache hits
//   - cuentica_cache_misses_total - Cache misses (including expired entries)
//   - cuentica_cache_invalidated_total{reason} - Entries removed by delete, prefix, clear or expiry
//   - cuentica_cache_entries - Live entries after the last write
package cache

package cache

import (
	"strings"

	"github.com/Sternrassler/cuentica-client/internal/querystr"
)

// Prefix is a resource name used for invalidation. It must be the singular
// path segment of the resource, as it appears at the start of cache keys.
type Prefix string

const (
	PrefixCustomer Prefix = "customer"
	PrefixInvoice  Prefix = "invoice"
	PrefixExpense  Prefix = "expense"
	PrefixProvider Prefix = "provider"
	PrefixAccount  Prefix = "account"
	PrefixIncome   Prefix = "income"
	PrefixDocument Prefix = "document"
	PrefixTag      Prefix = "tag"
	PrefixTransfer Prefix = "transfer"
	PrefixCompany  Prefix = "company"
)

var prefixes = []Prefix{
	PrefixCustomer,
	PrefixInvoice,
	PrefixExpense,
	PrefixProvider,
	PrefixAccount,
	PrefixIncome,
	PrefixDocument,
	PrefixTag,
	PrefixTransfer,
	PrefixCompany,
}

// Prefixes returns the closed set of invalidation prefixes.
func Prefixes() []Prefix {
	out := make([]Prefix, len(prefixes))
	copy(out, prefixes)
	return out
}

// ParsePrefix validates s against the closed prefix set.
func ParsePrefix(s string) (Prefix, bool) {
	for _, p := range prefixes {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// CacheKey identifies a cached API response.
type CacheKey struct {
	// Endpoint is the API path (e.g., "/customer/42")
	Endpoint string

	// QueryParams are the request query parameters; nil values are ignored
	QueryParams map[string]any
}

// String generates a deterministic cache key string.
// Format: path?key1=val1&key2=val2 with the leading slash removed and keys
// sorted.
//
// Example:
//
//	customer?page=1&page_size=10
func (k CacheKey) String() string {
	base := strings.TrimPrefix(k.Endpoint, "/")
	if len(k.QueryParams) == 0 {
		return base
	}

	values := querystr.Filter(k.QueryParams)
	if len(values) == 0 {
		return base
	}

	parts := make([]string, 0, len(values))
	for _, key := range querystr.SortedKeys(values) {
		parts = append(parts, key+"="+values[key])
	}
	return base + "?" + strings.Join(parts, "&")
}

// KeyFor derives the cache key for a request path and query.
func KeyFor(path string, query map[string]any) string {
	return CacheKey{Endpoint: path, QueryParams: query}.String()
}

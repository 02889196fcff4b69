package cache

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultListTTL applies to transactional lists and single entities.
	DefaultListTTL = 5 * time.Minute

	// DefaultStaticTTL applies to company and tag data.
	DefaultStaticTTL = 10 * time.Minute
)

// Config holds the store configuration.
type Config struct {
	// Enabled turns caching on. A disabled store never returns or keeps values.
	Enabled bool `mapstructure:"enabled"`

	// ListTTL is the default TTL (zero means DefaultListTTL)
	ListTTL time.Duration `mapstructure:"list_ttl"`

	// StaticTTL is the TTL for company and tag paths (zero means DefaultStaticTTL)
	StaticTTL time.Duration `mapstructure:"static_ttl"`
}

// DefaultConfig returns an enabled configuration with default TTLs.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		ListTTL:   DefaultListTTL,
		StaticTTL: DefaultStaticTTL,
	}
}

// Stats is a snapshot of live cache keys.
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Store is an in-memory key/value cache with per-entry TTL.
// Operations never fail; a cache problem must not break a request.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	config  Config
	now     func() time.Time
}

// NewStore creates a store owned by a single client instance.
func NewStore(cfg Config) *Store {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = DefaultListTTL
	}
	if cfg.StaticTTL <= 0 {
		cfg.StaticTTL = DefaultStaticTTL
	}
	return &Store{
		entries: make(map[string]*Entry),
		config:  cfg,
		now:     time.Now,
	}
}

// Enabled reports whether caching is active.
func (s *Store) Enabled() bool {
	return s.config.Enabled
}

// Get returns the value stored under key.
// Returns false if caching is disabled, the key is missing, or the entry
// has expired. Expired entries are removed.
func (s *Store) Get(key string) (any, bool) {
	if !s.config.Enabled {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		CacheMisses.Inc()
		return nil, false
	}

	if entry.IsExpired(s.now()) {
		delete(s.entries, key)
		CacheInvalidated.WithLabelValues("expired").Inc()
		CacheEntries.Set(float64(len(s.entries)))
		CacheMisses.Inc()
		return nil, false
	}

	CacheHits.Inc()
	return entry.Value, true
}

// Set stores value under key, overwriting any previous entry.
// A ttl <= 0 uses the configured list TTL.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if !s.config.Enabled {
		return
	}
	if ttl <= 0 {
		ttl = s.config.ListTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &Entry{
		Value:    value,
		StoredAt: s.now(),
		TTL:      ttl,
	}
	CacheEntries.Set(float64(len(s.entries)))
}

// Has reports whether a live value exists for key.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes the exact key and reports whether it existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	CacheInvalidated.WithLabelValues("delete").Inc()
	CacheEntries.Set(float64(len(s.entries)))
	return true
}

// Invalidate removes every key starting with prefix and returns how many
// were removed.
func (s *Store) Invalidate(prefix Prefix) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.entries {
		if strings.HasPrefix(key, string(prefix)) {
			delete(s.entries, key)
			count++
		}
	}

	if count > 0 {
		CacheInvalidated.WithLabelValues("prefix").Add(float64(count))
		CacheEntries.Set(float64(len(s.entries)))
	}
	return count
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.entries); n > 0 {
		CacheInvalidated.WithLabelValues("clear").Add(float64(n))
	}
	s.entries = make(map[string]*Entry)
	CacheEntries.Set(0)
}

// Stats sweeps expired entries and reports the live keys.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	keys := make([]string, 0, len(s.entries))
	for key, entry := range s.entries {
		if entry.IsExpired(now) {
			delete(s.entries, key)
			CacheInvalidated.WithLabelValues("expired").Inc()
			continue
		}
		keys = append(keys, key)
	}
	CacheEntries.Set(float64(len(s.entries)))

	return Stats{Size: len(keys), Keys: keys}
}

// TTLFor returns the TTL policy for a request path: paths with a "company"
// or "tag" segment change rarely and get the static TTL.
func (s *Store) TTLFor(path string) time.Duration {
	for _, segment := range strings.Split(path, "/") {
		if segment == string(PrefixCompany) || segment == string(PrefixTag) {
			return s.config.StaticTTL
		}
	}
	return s.config.ListTTL
}

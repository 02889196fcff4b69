// Package client provides the core Cuentica HTTP client: request execution,
// response caching, typed errors and pagination headers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/logging"
	"github.com/Sternrassler/cuentica-client/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for Cuentica client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuentica_requests_total",
		Help: "Total Cuentica API requests by resource and status",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cuentica_request_duration_seconds",
		Help:    "Cuentica API request duration in seconds by resource",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"resource"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuentica_errors_total",
		Help: "Total Cuentica API errors by class",
	}, []string{"class"})
)

const (
	// DefaultAPIURL is the production API host.
	DefaultAPIURL = "https://api.cuentica.com"

	// DefaultTimeout bounds a single exchange.
	DefaultTimeout = 30 * time.Second

	// AuthHeader carries the API token.
	AuthHeader = "X-AUTH-TOKEN"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIToken = "CUENTICA_API_TOKEN"
	EnvAPIURL   = "CUENTICA_API_URL"
)

// Client is the Cuentica API client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	cache      *cache.Store
	tracker    *ratelimit.Tracker
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIToken is sent as X-AUTH-TOKEN (REQUIRED)
	APIToken string

	// APIURL overrides the API base URL
	APIURL string

	// Timeout bounds each exchange (default 30s)
	Timeout time.Duration

	// Cache configures the response cache (nil uses cache.DefaultConfig)
	Cache *cache.Config

	// RateLimit configures the budget tracker (zero fields use defaults)
	RateLimit ratelimit.Config

	// Debug logs request bodies
	Debug bool

	// Logger replaces the default component logger
	Logger *zerolog.Logger

	// HTTPClient replaces the default transport
	HTTPClient *http.Client
}

// DefaultConfig returns a default configuration for token.
func DefaultConfig(token string) Config {
	return Config{
		APIToken:  token,
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		RateLimit: ratelimit.DefaultConfig(),
	}
}

// ConfigFromEnv builds a configuration from CUENTICA_API_TOKEN and the
// optional CUENTICA_API_URL.
func ConfigFromEnv() (Config, error) {
	token := os.Getenv(EnvAPIToken)
	if token == "" {
		return Config{}, &ConfigError{
			Message: EnvAPIToken + " environment variable is not set",
			Err:     ErrMissingToken,
		}
	}

	cfg := DefaultConfig(token)
	if apiURL := os.Getenv(EnvAPIURL); apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, nil
}

// New creates a new Cuentica client.
func New(cfg Config) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, &ConfigError{Message: ErrMissingToken.Error(), Err: ErrMissingToken}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if u, err := url.Parse(cfg.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ConfigError{Message: fmt.Sprintf("invalid API URL %q", cfg.APIURL), Err: err}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cacheCfg := cache.DefaultConfig()
	if cfg.Cache != nil {
		cacheCfg = *cfg.Cache
	}

	logger := logging.NewLogger(logging.ComponentClient)
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		cache:      cache.NewStore(cacheCfg),
		tracker:    ratelimit.NewTracker(cfg.RateLimit, logger),
		config:     cfg,
		logger:     logger,
	}, nil
}

// Request performs a call and decodes the response into out (which may be nil).
// It never uses the cache.
func (c *Client) Request(ctx context.Context, opts RequestOptions, out any) error {
	resp, err := c.do(ctx, opts)
	if err != nil {
		return err
	}
	return decodeInto(resp.Body, out)
}

// CachedRequest performs a call through the cache and decodes the response
// into out. Only GET calls without SkipCache are cached. The returned flag
// reports whether the value came from the cache.
func (c *Client) CachedRequest(ctx context.Context, opts RequestOptions, out any) (bool, error) {
	canCache := c.cacheable(opts)

	var key string
	if canCache {
		key = cache.KeyFor(opts.Path, opts.Query)
		if v, ok := c.cache.Get(key); ok {
			if raw, ok := v.(json.RawMessage); ok {
				c.logger.Debug().Str("path", opts.Path).Str("key", key).Msg("Cache hit")
				return true, decodeInto(raw, out)
			}
		}
	}

	resp, err := c.do(ctx, opts)
	if err != nil {
		return false, err
	}

	if canCache {
		ttl := c.cache.TTLFor(opts.Path)
		c.cache.Set(key, resp.Body, ttl)
		c.logger.Debug().Str("path", opts.Path).Str("key", key).Dur("ttl", ttl).Msg("Cache set")
	}

	return false, decodeInto(resp.Body, out)
}

// page is the cached form of a paginated response.
type page struct {
	Items      json.RawMessage
	Pagination PaginationInfo
}

// PaginatedRequest performs a list call through the cache, decodes the items
// into out and returns the pagination headers. Items and pagination are
// cached together, so a hit returns the pagination of the original response.
func (c *Client) PaginatedRequest(ctx context.Context, opts RequestOptions, out any) (PaginationInfo, bool, error) {
	canCache := c.cacheable(opts)

	var key string
	if canCache {
		key = cache.KeyFor(opts.Path, opts.Query)
		if v, ok := c.cache.Get(key); ok {
			if p, ok := v.(page); ok {
				c.logger.Debug().Str("path", opts.Path).Str("key", key).Msg("Cache hit (paginated)")
				return p.Pagination, true, decodeInto(p.Items, out)
			}
		}
	}

	resp, err := c.do(ctx, opts)
	if err != nil {
		return PaginationInfo{}, false, err
	}

	p := page{Items: resp.Body, Pagination: ParsePagination(resp.Header)}
	if canCache {
		ttl := c.cache.TTLFor(opts.Path)
		c.cache.Set(key, p, ttl)
		c.logger.Debug().Str("path", opts.Path).Str("key", key).Dur("ttl", ttl).Msg("Cache set (paginated)")
	}

	return p.Pagination, false, decodeInto(p.Items, out)
}

func (c *Client) cacheable(opts RequestOptions) bool {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	return method == http.MethodGet && !opts.SkipCache && c.cache.Enabled()
}

func decodeInto(raw json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// InvalidateCache removes every cached key starting with prefix.
func (c *Client) InvalidateCache(prefix cache.Prefix) int {
	n := c.cache.Invalidate(prefix)
	c.logger.Debug().Str("prefix", string(prefix)).Int("removed", n).Msg("Cache invalidated")
	return n
}

// DeleteFromCache removes the exact cache key.
func (c *Client) DeleteFromCache(key string) bool {
	return c.cache.Delete(key)
}

// ClearCache removes every cached response.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// CacheStats reports the live cache keys.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// RateLimitState reports the request budgets.
func (c *Client) RateLimitState() ratelimit.State {
	return c.tracker.State()
}

// Close drops the cache and idle connections.
func (c *Client) Close() error {
	c.cache.Clear()
	c.httpClient.CloseIdleConnections()
	return nil
}

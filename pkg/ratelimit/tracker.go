package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for request budget tracking.
var (
	windowRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cuentica_ratelimit_window_requests",
		Help: "Requests sent in the current 5 minute budget window",
	})

	dailyRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cuentica_ratelimit_daily_requests",
		Help: "Requests sent in the current UTC day",
	})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuentica_rate_limited_total",
		Help: "Total number of 429 responses received",
	})
)

// Config holds the tracked budgets.
type Config struct {
	WindowLimit  int
	Window       time.Duration
	DailyLimit   int
	WarningRatio float64
}

// DefaultConfig returns the published Cuentica budgets.
func DefaultConfig() Config {
	return Config{
		WindowLimit:  DefaultWindowLimit,
		Window:       DefaultWindow,
		DailyLimit:   DefaultDailyLimit,
		WarningRatio: DefaultWarningRatio,
	}
}

// Tracker counts requests against the API budgets.
type Tracker struct {
	mu     sync.Mutex
	config Config
	logger zerolog.Logger
	now    func() time.Time

	windowStart time.Time
	windowCount int
	dayStart    time.Time
	dayCount    int

	lastRateLimited time.Time
	retryAfterUntil time.Time
}

// NewTracker creates a tracker. Zero config fields take their defaults.
func NewTracker(cfg Config, logger zerolog.Logger) *Tracker {
	def := DefaultConfig()
	if cfg.WindowLimit <= 0 {
		cfg.WindowLimit = def.WindowLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = def.DailyLimit
	}
	if cfg.WarningRatio <= 0 || cfg.WarningRatio > 1 {
		cfg.WarningRatio = def.WarningRatio
	}

	return &Tracker{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RecordRequest counts one request sent to the API.
func (t *Tracker) RecordRequest() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.roll(t.now())
	t.windowCount++
	t.dayCount++

	windowRequests.Set(float64(t.windowCount))
	dailyRequests.Set(float64(t.dayCount))

	if t.windowCount == t.threshold(t.config.WindowLimit) {
		t.logger.Warn().
			Int("requests_in_window", t.windowCount).
			Int("window_limit", t.config.WindowLimit).
			Time("window_reset_at", t.windowStart.Add(t.config.Window)).
			Msg("Request budget for current window nearly used")
	}
	if t.dayCount == t.threshold(t.config.DailyLimit) {
		t.logger.Warn().
			Int("requests_today", t.dayCount).
			Int("daily_limit", t.config.DailyLimit).
			Msg("Daily request budget nearly used")
	}
}

// RecordRateLimited records a 429 response and its Retry-After hint in
// seconds (nil when the header was missing or not numeric).
func (t *Tracker) RecordRateLimited(retryAfterSeconds *int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.lastRateLimited = now
	if retryAfterSeconds != nil && *retryAfterSeconds > 0 {
		t.retryAfterUntil = now.Add(time.Duration(*retryAfterSeconds) * time.Second)
	}
	rateLimitedTotal.Inc()

	event := t.logger.Warn().
		Int("requests_in_window", t.windowCount).
		Int("requests_today", t.dayCount)
	if retryAfterSeconds != nil {
		event = event.Int("retry_after_seconds", *retryAfterSeconds)
	}
	event.Msg("Cuentica API rate limit exceeded")
}

// State returns a snapshot of the budgets.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.roll(now)

	state := State{
		RequestsInWindow: t.windowCount,
		WindowLimit:      t.config.WindowLimit,
		WindowResetAt:    t.windowStart.Add(t.config.Window),
		RequestsToday:    t.dayCount,
		DailyLimit:       t.config.DailyLimit,
		DayResetAt:       t.dayStart.Add(24 * time.Hour),
		LastRateLimited:  t.lastRateLimited,
		RetryAfterUntil:  t.retryAfterUntil,
	}
	state.UpdateHealth(now, t.config.WarningRatio)
	return state
}

// roll starts new windows when now has left the current ones.
// Must be called with t.mu held.
func (t *Tracker) roll(now time.Time) {
	if start := now.Truncate(t.config.Window); !start.Equal(t.windowStart) {
		t.windowStart = start
		t.windowCount = 0
	}
	if start := now.UTC().Truncate(24 * time.Hour); !start.Equal(t.dayStart) {
		t.dayStart = start
		t.dayCount = 0
	}
}

func (t *Tracker) threshold(limit int) int {
	n := int(float64(limit) * t.config.WarningRatio)
	if n < 1 {
		n = 1
	}
	return n
}

// Package ratelimit tracks Cuentica API request budgets.
// The API allows 600 requests per 5 minutes and 7200 per day. The tracker
// counts requests in fixed windows and remembers the last 429 response so
// callers can decide when to back off. It never blocks, delays or retries.
package ratelimit

import (
	"time"
)

// Budgets published for the Cuentica API.
const (
	// DefaultWindowLimit is the request budget per window.
	DefaultWindowLimit = 600

	// DefaultWindow is the length of the short budget window.
	DefaultWindow = 5 * time.Minute

	// DefaultDailyLimit is the request budget per UTC day.
	DefaultDailyLimit = 7200

	// DefaultWarningRatio is the share of a budget after which the tracker warns.
	DefaultWarningRatio = 0.8
)

// State is a snapshot of the request budgets.
type State struct {
	// RequestsInWindow counts requests sent in the current short window.
	RequestsInWindow int `json:"requests_in_window"`

	// WindowLimit is the budget for RequestsInWindow.
	WindowLimit int `json:"window_limit"`

	// WindowResetAt is when the current short window ends.
	WindowResetAt time.Time `json:"window_reset_at"`

	// RequestsToday counts requests sent in the current UTC day.
	RequestsToday int `json:"requests_today"`

	// DailyLimit is the budget for RequestsToday.
	DailyLimit int `json:"daily_limit"`

	// DayResetAt is when the daily window ends.
	DayResetAt time.Time `json:"day_reset_at"`

	// LastRateLimited is when the API last answered 429 (zero if never).
	LastRateLimited time.Time `json:"last_rate_limited,omitempty"`

	// RetryAfterUntil is the end of the last Retry-After hint (zero if none).
	RetryAfterUntil time.Time `json:"retry_after_until,omitempty"`

	// IsHealthy is false while either budget is past its warning ratio or a
	// Retry-After hint is still running.
	IsHealthy bool `json:"is_healthy"`
}

// WindowRemaining returns the requests left in the current short window.
func (s *State) WindowRemaining() int {
	return remaining(s.WindowLimit, s.RequestsInWindow)
}

// DailyRemaining returns the requests left today.
func (s *State) DailyRemaining() int {
	return remaining(s.DailyLimit, s.RequestsToday)
}

// InRetryAfter reports whether the last Retry-After hint has not yet elapsed at now.
func (s *State) InRetryAfter(now time.Time) bool {
	return now.Before(s.RetryAfterUntil)
}

// TimeUntilRetry returns how long the Retry-After hint still runs.
// Returns 0 if no hint is active.
func (s *State) TimeUntilRetry(now time.Time) time.Duration {
	if !s.InRetryAfter(now) {
		return 0
	}
	return s.RetryAfterUntil.Sub(now)
}

// NearLimit reports whether either budget has passed ratio of its limit.
func (s *State) NearLimit(ratio float64) bool {
	return over(s.RequestsInWindow, s.WindowLimit, ratio) ||
		over(s.RequestsToday, s.DailyLimit, ratio)
}

// UpdateHealth recomputes IsHealthy at now.
func (s *State) UpdateHealth(now time.Time, ratio float64) {
	s.IsHealthy = !s.NearLimit(ratio) && !s.InRetryAfter(now)
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}

func over(used, limit int, ratio float64) bool {
	if limit <= 0 {
		return false
	}
	return float64(used) >= float64(limit)*ratio
}

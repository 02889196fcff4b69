package ratelimit

import (
	"testing"
	"time"
)

func TestState_Remaining(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		wantWindow int
		wantDaily  int
	}{
		{
			name:       "fresh",
			state:      State{WindowLimit: 600, DailyLimit: 7200},
			wantWindow: 600,
			wantDaily:  7200,
		},
		{
			name:       "partly used",
			state:      State{RequestsInWindow: 100, WindowLimit: 600, RequestsToday: 1000, DailyLimit: 7200},
			wantWindow: 500,
			wantDaily:  6200,
		},
		{
			name:       "over budget",
			state:      State{RequestsInWindow: 700, WindowLimit: 600, RequestsToday: 8000, DailyLimit: 7200},
			wantWindow: 0,
			wantDaily:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.WindowRemaining(); got != tt.wantWindow {
				t.Errorf("WindowRemaining() = %d, want %d", got, tt.wantWindow)
			}
			if got := tt.state.DailyRemaining(); got != tt.wantDaily {
				t.Errorf("DailyRemaining() = %d, want %d", got, tt.wantDaily)
			}
		})
	}
}

func TestState_TimeUntilRetry(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		until time.Time
		want  time.Duration
	}{
		{"no hint", time.Time{}, 0},
		{"running hint", now.Add(30 * time.Second), 30 * time.Second},
		{"elapsed hint", now.Add(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{RetryAfterUntil: tt.until}
			if got := s.TimeUntilRetry(now); got != tt.want {
				t.Errorf("TimeUntilRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_UpdateHealth(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{
			name:     "healthy",
			state:    State{RequestsInWindow: 10, WindowLimit: 600, RequestsToday: 10, DailyLimit: 7200},
			expected: true,
		},
		{
			name:     "window at warning ratio",
			state:    State{RequestsInWindow: 480, WindowLimit: 600, RequestsToday: 480, DailyLimit: 7200},
			expected: false,
		},
		{
			name:     "daily at warning ratio",
			state:    State{RequestsInWindow: 1, WindowLimit: 600, RequestsToday: 5760, DailyLimit: 7200},
			expected: false,
		},
		{
			name: "retry after running",
			state: State{
				WindowLimit:     600,
				DailyLimit:      7200,
				RetryAfterUntil: now.Add(time.Minute),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.state.UpdateHealth(now, DefaultWarningRatio)
			if tt.state.IsHealthy != tt.expected {
				t.Errorf("IsHealthy = %v, want %v", tt.state.IsHealthy, tt.expected)
			}
		})
	}
}

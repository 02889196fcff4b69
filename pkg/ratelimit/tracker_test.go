package ratelimit

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestTracker(cfg Config) (*Tracker, *time.Time, *bytes.Buffer) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := NewTracker(cfg, zerolog.New(&buf))
	tr.now = func() time.Time { return now }
	return tr, &now, &buf
}

func TestNewTracker_Defaults(t *testing.T) {
	tr := NewTracker(Config{}, zerolog.Nop())

	if tr.config != DefaultConfig() {
		t.Errorf("config = %+v, want %+v", tr.config, DefaultConfig())
	}
}

func TestTracker_RecordRequest(t *testing.T) {
	tr, _, _ := newTestTracker(DefaultConfig())

	for i := 0; i < 3; i++ {
		tr.RecordRequest()
	}

	state := tr.State()
	if state.RequestsInWindow != 3 {
		t.Errorf("RequestsInWindow = %d, want 3", state.RequestsInWindow)
	}
	if state.RequestsToday != 3 {
		t.Errorf("RequestsToday = %d, want 3", state.RequestsToday)
	}
	if !state.IsHealthy {
		t.Error("tracker should be healthy")
	}
	wantReset := time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
	if !state.WindowResetAt.Equal(wantReset) {
		t.Errorf("WindowResetAt = %v, want %v", state.WindowResetAt, wantReset)
	}
}

func TestTracker_WindowRollover(t *testing.T) {
	tr, now, _ := newTestTracker(DefaultConfig())

	tr.RecordRequest()
	tr.RecordRequest()

	*now = now.Add(5 * time.Minute)
	tr.RecordRequest()

	state := tr.State()
	if state.RequestsInWindow != 1 {
		t.Errorf("RequestsInWindow = %d, want 1", state.RequestsInWindow)
	}
	if state.RequestsToday != 3 {
		t.Errorf("RequestsToday = %d, want 3", state.RequestsToday)
	}

	*now = now.Add(24 * time.Hour)
	state = tr.State()
	if state.RequestsToday != 0 {
		t.Errorf("RequestsToday after day rollover = %d, want 0", state.RequestsToday)
	}
}

func TestTracker_WarnsNearBudget(t *testing.T) {
	tr, _, buf := newTestTracker(Config{WindowLimit: 10, DailyLimit: 1000, WarningRatio: 0.5})

	for i := 0; i < 4; i++ {
		tr.RecordRequest()
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output before threshold: %s", buf.String())
	}

	tr.RecordRequest()
	if !strings.Contains(buf.String(), "nearly used") {
		t.Errorf("expected warning at threshold, got %q", buf.String())
	}

	if tr.State().IsHealthy {
		t.Error("tracker past warning ratio should not be healthy")
	}
}

func TestTracker_RecordRateLimited(t *testing.T) {
	seconds := func(n int) *int { return &n }

	tests := []struct {
		name       string
		retryAfter *int
		wantWait   time.Duration
	}{
		{"with retry after", seconds(30), 30 * time.Second},
		{"without retry after", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, now, buf := newTestTracker(DefaultConfig())

			tr.RecordRateLimited(tt.retryAfter)

			state := tr.State()
			if !state.LastRateLimited.Equal(*now) {
				t.Errorf("LastRateLimited = %v, want %v", state.LastRateLimited, *now)
			}
			if got := state.TimeUntilRetry(*now); got != tt.wantWait {
				t.Errorf("TimeUntilRetry() = %v, want %v", got, tt.wantWait)
			}
			if !strings.Contains(buf.String(), "rate limit exceeded") {
				t.Errorf("expected warning log, got %q", buf.String())
			}
		})
	}
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tr := NewTracker(DefaultConfig(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				tr.RecordRequest()
			}
		}()
	}
	wg.Wait()

	if got := tr.State().RequestsToday; got != 200 {
		t.Errorf("RequestsToday = %d, want 200", got)
	}
}

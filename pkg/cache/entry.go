package cache

import "time"

// Entry is a single cached value.
type Entry struct {
	// Value is the cached payload
	Value any

	// StoredAt is when the value was written
	StoredAt time.Time

	// TTL is how long the value stays valid after StoredAt
	TTL time.Duration
}

// IsExpired reports whether the entry is stale at now.
// An entry is still valid at exactly StoredAt + TTL.
func (e *Entry) IsExpired(now time.Time) bool {
	return now.Sub(e.StoredAt) > e.TTL
}

// Remaining returns the time left before expiry at now.
// Returns 0 if already expired.
func (e *Entry) Remaining(now time.Time) time.Duration {
	left := e.TTL - now.Sub(e.StoredAt)
	if left < 0 {
		return 0
	}
	return left
}

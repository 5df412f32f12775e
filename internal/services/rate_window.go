package services

import (
	"sync"
	"time"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// RateWindowTracker keeps a bounded-recency window of messages per user.
// It answers "what has this user said in the last few seconds" and nothing
// else; moderation policy lives in the engine. Distinct-user growth is
// bounded by guild membership, so entries are never evicted — only pruned
// by age or reset after a moderation action fires.
type RateWindowTracker struct {
	mu      sync.Mutex
	windows map[string][]models.MessageRecord
	ttl     time.Duration
	now     func() time.Time
}

func NewRateWindowTracker(ttl time.Duration) *RateWindowTracker {
	return &RateWindowTracker{
		windows: make(map[string][]models.MessageRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewRateWindowTrackerWithClock injects the clock for tests.
func NewRateWindowTrackerWithClock(ttl time.Duration, now func() time.Time) *RateWindowTracker {
	t := NewRateWindowTracker(ttl)
	t.now = now
	return t
}

// Record appends the message to the user's window, drops every entry older
// than the window TTL, and returns the resulting window oldest-first. The
// returned slice includes the message just recorded.
func (t *RateWindowTracker) Record(userID, content string) []models.MessageRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	window := append(t.windows[userID], models.MessageRecord{
		Content:   content,
		Timestamp: now,
	})

	recent := window[:0]
	for _, rec := range window {
		if now.Sub(rec.Timestamp) <= t.ttl {
			recent = append(recent, rec)
		}
	}
	t.windows[userID] = recent

	// Callers inspect the window after releasing the lock; hand them a copy
	// so a concurrent Record/Reset cannot mutate it underneath.
	out := make([]models.MessageRecord, len(recent))
	copy(out, recent)
	return out
}

// Reset clears the user's window. Called after a moderation action fires so
// the residue of a burst cannot retrigger on the user's next message.
func (t *RateWindowTracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windows[userID] = nil
}

// TrackedUsers reports how many distinct users currently have a window.
func (t *RateWindowTracker) TrackedUsers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.windows)
}

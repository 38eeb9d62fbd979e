package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	at     time.Time
	weight int
}

// SlidingWindowLimiter counts requests per user over a trailing window. One
// entry is stored per request; entries older than the window are weightless
// and pruned on access and by CleanupOldEntries. State is memory-only: a
// restart resets all counters.
//
// A single mutex guards the window map. Critical sections are bounded by the
// number of in-window entries for one user, so cross-user contention stays
// negligible at this scale.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	windows map[int64][]entry
	window  time.Duration
	now     func() time.Time
}

// NewSlidingWindowLimiter creates a limiter with the given window duration.
func NewSlidingWindowLimiter(window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windows: make(map[int64][]entry),
		window:  window,
		now:     time.Now,
	}
}

// SetClock overrides the time source. Test use only.
func (l *SlidingWindowLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// pruneLocked drops entries older than the window. Caller holds l.mu.
func (l *SlidingWindowLimiter) pruneLocked(userID int64, now time.Time) {
	cutoff := now.Add(-l.window)
	entries := l.windows[userID]
	kept := entries[:0]
	for _, e := range entries {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(l.windows, userID)
		return
	}
	l.windows[userID] = kept
}

// countLocked sums in-window weights. Caller holds l.mu.
func (l *SlidingWindowLimiter) countLocked(userID int64) int {
	total := 0
	for _, e := range l.windows[userID] {
		total += e.weight
	}
	return total
}

func (l *SlidingWindowLimiter) decisionLocked(userID int64, ceiling int, now time.Time) Decision {
	l.pruneLocked(userID, now)
	current := l.countLocked(userID)

	d := Decision{
		Allowed: current < ceiling,
		Current: current,
		Ceiling: ceiling,
	}
	if !d.Allowed {
		d.RetryAfter = l.resetAfterLocked(userID, now)
	}
	return d
}

func (l *SlidingWindowLimiter) resetAfterLocked(userID int64, now time.Time) time.Duration {
	entries := l.windows[userID]
	if len(entries) == 0 {
		return 0
	}
	oldest := entries[0].at
	for _, e := range entries[1:] {
		if e.at.Before(oldest) {
			oldest = e.at
		}
	}
	remaining := oldest.Add(l.window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Check implements Limiter.
func (l *SlidingWindowLimiter) Check(userID int64, ceiling int) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decisionLocked(userID, ceiling, l.now())
}

// Allow implements Limiter. Check and record happen under one lock
// acquisition, which is what makes N concurrent calls with ceiling K admit
// exactly min(N, K).
func (l *SlidingWindowLimiter) Allow(userID int64, ceiling int) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	d := l.decisionLocked(userID, ceiling, now)
	if d.Allowed {
		l.windows[userID] = append(l.windows[userID], entry{at: now, weight: 1})
		d.Current++
	}
	return d
}

// Record implements Limiter.
func (l *SlidingWindowLimiter) Record(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows[userID] = append(l.windows[userID], entry{at: l.now(), weight: 1})
}

// ResetAfter implements Limiter.
func (l *SlidingWindowLimiter) ResetAfter(userID int64) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(userID, now)
	return l.resetAfterLocked(userID, now)
}

// ClearUser implements Limiter.
func (l *SlidingWindowLimiter) ClearUser(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, userID)
}

// CleanupOldEntries implements Limiter. Idempotent; bounds memory to users
// active within the window.
func (l *SlidingWindowLimiter) CleanupOldEntries() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for userID := range l.windows {
		l.pruneLocked(userID, now)
	}
}

// TrackedUsers reports how many users currently have window state.
func (l *SlidingWindowLimiter) TrackedUsers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

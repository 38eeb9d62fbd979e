package ratelimit

import "time"

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	Current    int
	Ceiling    int
	RetryAfter time.Duration
}

// Limiter is the admission-control port used by the orchestrator. A rejection
// is a value, never an error: admission has no failure mode besides "not
// allowed".
type Limiter interface {
	// Check prunes the user's window and reports whether one more request
	// would be admitted. It does not record anything.
	Check(userID int64, ceiling int) Decision

	// Allow performs check-then-record atomically for the user. Concurrent
	// callers for the same user can never both consume the last slot.
	Allow(userID int64, ceiling int) Decision

	// Record appends one request to the user's window. Call only after a
	// Check that returned Allowed; prefer Allow, which does both.
	Record(userID int64)

	// ResetAfter reports how long until the user's oldest entry leaves the
	// window, i.e. when a slot frees up without new activity.
	ResetAfter(userID int64) time.Duration

	// ClearUser drops all recorded requests for a user (admin reset).
	ClearUser(userID int64)

	// CleanupOldEntries purges stale entries for all users and removes
	// users with empty windows. Safe to call on a timer.
	CleanupOldEntries()
}

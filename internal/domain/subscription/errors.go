package subscription

import "errors"

var (
	// ErrSubscriptionNotFound is returned when no matching subscription row exists.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

package user

import "errors"

var (
	// ErrUserNotFound is returned when no user exists for a Telegram ID.
	ErrUserNotFound = errors.New("user not found")
)

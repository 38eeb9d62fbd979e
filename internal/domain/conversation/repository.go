package conversation

import "context"

// Repository defines persistence operations for conversation history.
type Repository interface {
	Append(ctx context.Context, m *Message) error

	// RecentByUserID returns up to limit most recent messages for the user
	// in chronological order.
	RecentByUserID(ctx context.Context, userID int64, limit int) ([]*Message, error)

	// Clear removes the user's entire history.
	Clear(ctx context.Context, userID int64) error
}

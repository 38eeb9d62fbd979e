package user

import "context"

// Repository defines persistence operations for users.
type Repository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error

	// SetPremiumFlag writes only the premium flag, used by entitlement
	// transitions that must not clobber concurrent profile updates.
	SetPremiumFlag(ctx context.Context, telegramID int64, premium bool) error

	// RecordUsage atomically increments message count and token usage.
	RecordUsage(ctx context.Context, telegramID int64, tokens int) error

	Count(ctx context.Context) (int64, error)
}

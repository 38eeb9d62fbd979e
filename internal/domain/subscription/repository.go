package subscription

import "context"

// Repository defines persistence operations for subscriptions.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error

	// GetLatestActiveByUserID returns the most recent active row by expiry
	// for the user, including rows whose expiry has already passed; the
	// resolver needs to observe those to perform lazy expiry. Returns
	// ErrSubscriptionNotFound when the user has no active row.
	GetLatestActiveByUserID(ctx context.Context, userID int64) (*Subscription, error)

	// GetByPaymentRef returns the subscription created for a payment
	// reference, used to make activation idempotent against duplicate
	// payment confirmations.
	GetByPaymentRef(ctx context.Context, paymentRef string) (*Subscription, error)

	// DeactivateAllByUserID marks every active row for the user inactive.
	DeactivateAllByUserID(ctx context.Context, userID int64) error

	// FindExpiredActive returns all active rows whose expiry has passed,
	// for the periodic sweep.
	FindExpiredActive(ctx context.Context) ([]*Subscription, error)
}

package payment

import "context"

// Repository defines persistence operations for payments.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error

	// GetByPaymentRef returns the payment carrying a platform payment
	// reference; ErrPaymentNotFound when none exists.
	GetByPaymentRef(ctx context.Context, paymentRef string) (*Payment, error)

	ListByUserID(ctx context.Context, userID int64) ([]*Payment, error)

	// TotalRevenueStars sums completed payments.
	TotalRevenueStars(ctx context.Context) (int64, error)
}

package payment

import (
	"fmt"
	"time"
)

// Status is the settlement state of a payment record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment records one Telegram Stars charge. Settlement happens upstream;
// this is bookkeeping of a confirmation we trust.
type Payment struct {
	id          uint
	userID      int64
	amountStars int
	purpose     string
	paymentRef  string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPayment creates a pending payment record.
func NewPayment(userID int64, amountStars int, purpose, paymentRef string) (*Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if amountStars < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if purpose == "" {
		return nil, fmt.Errorf("purpose is required")
	}

	now := time.Now()
	return &Payment{
		userID:      userID,
		amountStars: amountStars,
		purpose:     purpose,
		paymentRef:  paymentRef,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPayment reconstructs a payment from persistence.
func ReconstructPayment(id uint, userID int64, amountStars int, purpose, paymentRef string, status Status, createdAt, updatedAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:          id,
		userID:      userID,
		amountStars: amountStars,
		purpose:     purpose,
		paymentRef:  paymentRef,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Payment) ID() uint             { return p.id }
func (p *Payment) UserID() int64        { return p.userID }
func (p *Payment) AmountStars() int     { return p.amountStars }
func (p *Payment) Purpose() string      { return p.purpose }
func (p *Payment) PaymentRef() string   { return p.paymentRef }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the payment ID after insertion.
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	p.id = id
	return nil
}

// Complete marks the payment settled.
func (p *Payment) Complete() {
	if p.status == StatusCompleted {
		return
	}
	p.status = StatusCompleted
	p.updatedAt = time.Now()
}

// Fail marks the payment failed.
func (p *Payment) Fail() {
	if p.status == StatusFailed {
		return
	}
	p.status = StatusFailed
	p.updatedAt = time.Now()
}

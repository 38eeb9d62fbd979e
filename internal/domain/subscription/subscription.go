package subscription

import (
	"fmt"
	"time"
)

// Subscription represents one purchased (or granted) entitlement period.
type Subscription struct {
	id         uint
	userID     int64
	tier       Tier
	starsPaid  int
	startedAt  time.Time
	expiresAt  time.Time
	isActive   bool
	paymentRef string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewSubscription creates a new active subscription starting now.
func NewSubscription(userID int64, tier Tier, starsPaid, durationDays int, paymentRef string) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !tier.IsPaid() {
		return nil, fmt.Errorf("cannot create subscription for tier %s", tier)
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if starsPaid < 0 {
		return nil, fmt.Errorf("stars paid cannot be negative")
	}

	now := time.Now()
	return &Subscription{
		userID:     userID,
		tier:       tier,
		starsPaid:  starsPaid,
		startedAt:  now,
		expiresAt:  now.AddDate(0, 0, durationDays),
		isActive:   true,
		paymentRef: paymentRef,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(
	id uint,
	userID int64,
	tier Tier,
	starsPaid int,
	startedAt, expiresAt time.Time,
	isActive bool,
	paymentRef string,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier: %s", tier)
	}

	return &Subscription{
		id:         id,
		userID:     userID,
		tier:       tier,
		starsPaid:  starsPaid,
		startedAt:  startedAt,
		expiresAt:  expiresAt,
		isActive:   isActive,
		paymentRef: paymentRef,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (s *Subscription) ID() uint             { return s.id }
func (s *Subscription) UserID() int64        { return s.userID }
func (s *Subscription) Tier() Tier           { return s.tier }
func (s *Subscription) StarsPaid() int       { return s.starsPaid }
func (s *Subscription) StartedAt() time.Time { return s.startedAt }
func (s *Subscription) ExpiresAt() time.Time { return s.expiresAt }
func (s *Subscription) IsActive() bool       { return s.isActive }
func (s *Subscription) PaymentRef() string   { return s.paymentRef }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the subscription ID after insertion.
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsExpiredAt reports whether the subscription has passed its expiry at the
// given instant.
func (s *Subscription) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// Deactivate marks the subscription inactive. Idempotent: deactivating twice
// is harmless, which is what makes concurrent lazy expiry safe.
func (s *Subscription) Deactivate() {
	if !s.isActive {
		return
	}
	s.isActive = false
	s.updatedAt = time.Now()
}

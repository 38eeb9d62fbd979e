package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/mappers"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	// Write back the auto-generated ID to the domain object.
	return sub.SetID(model.ID)
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	if err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"is_active":  model.IsActive,
			"expires_at": model.ExpiresAt,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}

// GetLatestActiveByUserID deliberately does not filter by expiry: the
// entitlement resolver must see expired-but-still-active rows to lazily
// deactivate them.
func (r *SubscriptionRepository) GetLatestActiveByUserID(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("expires_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) GetByPaymentRef(ctx context.Context, paymentRef string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("payment_ref = ?", paymentRef).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by payment ref: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) DeactivateAllByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate subscriptions: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) FindExpiredActive(ctx context.Context) ([]*subscription.Subscription, error) {
	var subModels []models.SubscriptionModel

	// Bind the cutoff as a Go time. SQLite's CURRENT_TIMESTAMP is a UTC
	// string and compares lexicographically against the driver's
	// zone-suffixed encoding, which misfires outside UTC.
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND expires_at <= ?", true, time.Now()).
		Find(&subModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	subs := make([]*subscription.Subscription, len(subModels))
	for i, model := range subModels {
		sub, err := mappers.SubscriptionToDomain(&model)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}

	return subs, nil
}

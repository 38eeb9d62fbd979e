package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/payment"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/mappers"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByPaymentRef(ctx context.Context, paymentRef string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := r.db.WithContext(ctx).
		Where("payment_ref = ?", paymentRef).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ref: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) ListByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	var payModels []models.PaymentModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*payment.Payment, len(payModels))
	for i, model := range payModels {
		p, err := mappers.PaymentToDomain(&model)
		if err != nil {
			return nil, err
		}
		payments[i] = p
	}

	return payments, nil
}

func (r *PaymentRepository) TotalRevenueStars(ctx context.Context) (int64, error) {
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("status = ?", string(payment.StatusCompleted)).
		Select("COALESCE(SUM(amount_stars), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return total, nil
}

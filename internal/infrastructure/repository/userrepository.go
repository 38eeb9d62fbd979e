package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/mappers"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, "telegram_id = ?", telegramID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return mappers.UserToDomain(&model)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)

	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("telegram_id = ?", model.TelegramID).
		Updates(map[string]interface{}{
			"username":        model.Username,
			"first_name":      model.FirstName,
			"last_name":       model.LastName,
			"language_code":   model.LanguageCode,
			"preferred_model": model.PreferredModel,
			"is_premium":      model.IsPremium,
			"is_banned":       model.IsBanned,
			"last_active_at":  model.LastActiveAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepository) SetPremiumFlag(ctx context.Context, telegramID int64, premium bool) error {
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("telegram_id = ?", telegramID).
		Update("is_premium", premium).Error; err != nil {
		return fmt.Errorf("failed to set premium flag: %w", err)
	}

	return nil
}

func (r *UserRepository) RecordUsage(ctx context.Context, telegramID int64, tokens int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("telegram_id = ?", telegramID).
		Updates(map[string]interface{}{
			"message_count":     gorm.Expr("message_count + 1"),
			"total_tokens_used": gorm.Expr("total_tokens_used + ?", tokens),
		}).Error; err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/mappers"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Append(ctx context.Context, m *conversation.Message) error {
	model := mappers.MessageToModel(m)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *ConversationRepository) RecentByUserID(ctx context.Context, userID int64, limit int) ([]*conversation.Message, error) {
	var msgModels []models.MessageModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	// Reverse into chronological order for the model context.
	msgs := make([]*conversation.Message, len(msgModels))
	for i := range msgModels {
		m, err := mappers.MessageToDomain(&msgModels[len(msgModels)-1-i])
		if err != nil {
			return nil, err
		}
		msgs[i] = m
	}

	return msgs, nil
}

func (r *ConversationRepository) Clear(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}

	return nil
}

// Package mappers converts between gorm models and domain aggregates.
package mappers

import (
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/payment"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		TelegramID:      u.TelegramID(),
		Username:        u.Username(),
		FirstName:       u.FirstName(),
		LastName:        u.LastName(),
		LanguageCode:    u.LanguageCode(),
		PreferredModel:  u.PreferredModel(),
		IsPremium:       u.IsPremium(),
		IsBanned:        u.IsBanned(),
		MessageCount:    u.MessageCount(),
		TotalTokensUsed: u.TotalTokensUsed(),
		CreatedAt:       u.CreatedAt(),
		LastActiveAt:    u.LastActiveAt(),
	}
}

func UserToDomain(m *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		m.TelegramID,
		m.Username, m.FirstName, m.LastName, m.LanguageCode, m.PreferredModel,
		m.IsPremium, m.IsBanned,
		m.MessageCount, m.TotalTokensUsed,
		m.CreatedAt, m.LastActiveAt,
	)
}

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:         s.ID(),
		UserID:     s.UserID(),
		Tier:       s.Tier().String(),
		StarsPaid:  s.StarsPaid(),
		StartedAt:  s.StartedAt(),
		ExpiresAt:  s.ExpiresAt(),
		IsActive:   s.IsActive(),
		PaymentRef: s.PaymentRef(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
}

func SubscriptionToDomain(m *models.SubscriptionModel) (*subscription.Subscription, error) {
	tier, err := subscription.ParseTier(m.Tier)
	if err != nil {
		return nil, fmt.Errorf("corrupt subscription row %d: %w", m.ID, err)
	}
	return subscription.ReconstructSubscription(
		m.ID, m.UserID, tier, m.StarsPaid,
		m.StartedAt, m.ExpiresAt, m.IsActive, m.PaymentRef,
		m.CreatedAt, m.UpdatedAt,
	)
}

func MessageToModel(msg *conversation.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:        msg.ID(),
		UserID:    msg.UserID(),
		Role:      string(msg.Role()),
		Content:   msg.Content(),
		ModelUsed: msg.ModelUsed(),
		Tokens:    msg.Tokens(),
		CreatedAt: msg.CreatedAt(),
	}
}

func MessageToDomain(m *models.MessageModel) (*conversation.Message, error) {
	return conversation.ReconstructMessage(
		m.ID, m.UserID, conversation.Role(m.Role),
		m.Content, m.ModelUsed, m.Tokens, m.CreatedAt,
	)
}

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:          p.ID(),
		UserID:      p.UserID(),
		AmountStars: p.AmountStars(),
		Purpose:     p.Purpose(),
		PaymentRef:  p.PaymentRef(),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	return payment.ReconstructPayment(
		m.ID, m.UserID, m.AmountStars, m.Purpose, m.PaymentRef,
		payment.Status(m.Status), m.CreatedAt, m.UpdatedAt,
	)
}

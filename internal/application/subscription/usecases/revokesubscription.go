package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// RevokeSubscriptionUseCase removes a user's paid access immediately.
// Admin-only; there is no refund path through the bot.
type RevokeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	logger           logger.Interface
}

func NewRevokeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *RevokeSubscriptionUseCase {
	return &RevokeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (uc *RevokeSubscriptionUseCase) Execute(ctx context.Context, userID int64) error {
	if err := uc.subscriptionRepo.DeactivateAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke subscription: %w", err)
	}

	if err := uc.userRepo.SetPremiumFlag(ctx, userID, false); err != nil {
		return fmt.Errorf("failed to clear premium flag: %w", err)
	}

	uc.logger.Infow("subscription revoked", "user_id", userID)
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// ExpireSubscriptionsUseCase is the background sweep that deactivates
// subscriptions past their expiry. Lazy expiry during resolution already
// handles active users; the sweep catches users who stopped messaging.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Execute deactivates all lapsed subscriptions and returns the affected
// user IDs.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) ([]int64, error) {
	expired, err := uc.subscriptionRepo.FindExpiredActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	if len(expired) == 0 {
		return nil, nil
	}

	affected := make([]int64, 0, len(expired))
	for _, sub := range expired {
		sub.Deactivate()
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to deactivate subscription",
				"error", err,
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
			)
			continue
		}
		if err := uc.userRepo.SetPremiumFlag(ctx, sub.UserID(), false); err != nil {
			uc.logger.Warnw("failed to clear premium flag", "error", err, "user_id", sub.UserID())
		}
		affected = append(affected, sub.UserID())
	}

	uc.logger.Infow("expired subscriptions swept", "count", len(affected))
	return affected, nil
}

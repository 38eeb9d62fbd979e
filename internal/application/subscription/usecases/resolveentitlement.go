package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// ResolveEntitlementUseCase maps a user to their current entitlement.
// Expired subscriptions are deactivated during resolution, so a lapsed
// user drops to the free tier on their next request rather than waiting
// for the background sweep.
type ResolveEntitlementUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	plans            *subscription.PlanTable
	now              func() time.Time
	logger           logger.Interface
}

func NewResolveEntitlementUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	plans *subscription.PlanTable,
	logger logger.Interface,
) *ResolveEntitlementUseCase {
	return &ResolveEntitlementUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		plans:            plans,
		now:              time.Now,
		logger:           logger,
	}
}

// SetClock overrides the time source. Intended for tests.
func (uc *ResolveEntitlementUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ResolveEntitlementUseCase) Execute(ctx context.Context, userID int64) (*subscription.Entitlement, error) {
	sub, err := uc.subscriptionRepo.GetLatestActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return subscription.FreeEntitlement(uc.plans), nil
		}
		// A store error must not silently downgrade a paying user.
		uc.logger.Errorw("failed to resolve entitlement", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to resolve entitlement: %w", err)
	}

	if sub.IsExpiredAt(uc.now()) {
		sub.Deactivate()
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to deactivate expired subscription", "error", err, "user_id", userID, "subscription_id", sub.ID())
			return nil, fmt.Errorf("failed to deactivate expired subscription: %w", err)
		}
		if err := uc.userRepo.SetPremiumFlag(ctx, userID, false); err != nil {
			uc.logger.Warnw("failed to clear premium flag", "error", err, "user_id", userID)
		}

		uc.logger.Infow("subscription lapsed during resolution",
			"user_id", userID,
			"tier", sub.Tier().String(),
			"expired_at", sub.ExpiresAt(),
		)
		return subscription.FreeEntitlement(uc.plans), nil
	}

	return subscription.EntitlementFor(uc.plans, sub), nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type GrantPremiumCommand struct {
	UserID int64
	Tier   subscription.Tier
	// DurationDays overrides the plan's duration when positive.
	DurationDays int
}

// GrantPremiumUseCase gives a user paid access without a payment.
// Admin-only; the subscription carries a synthetic payment ref and zero
// stars so revenue reporting stays accurate.
type GrantPremiumUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	plans            *subscription.PlanTable
	logger           logger.Interface
}

func NewGrantPremiumUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	plans *subscription.PlanTable,
	logger logger.Interface,
) *GrantPremiumUseCase {
	return &GrantPremiumUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		plans:            plans,
		logger:           logger,
	}
}

func (uc *GrantPremiumUseCase) Execute(ctx context.Context, cmd GrantPremiumCommand) (*subscription.Subscription, error) {
	if !cmd.Tier.IsPaid() {
		return nil, fmt.Errorf("cannot grant tier %s", cmd.Tier)
	}

	durationDays := uc.plans.PlanFor(cmd.Tier).DurationDays
	if cmd.DurationDays > 0 {
		durationDays = cmd.DurationDays
	}

	paymentRef := "grant_" + uuid.NewString()
	sub, err := subscription.NewSubscription(cmd.UserID, cmd.Tier, 0, durationDays, paymentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to build subscription: %w", err)
	}

	if err := uc.subscriptionRepo.DeactivateAllByUserID(ctx, cmd.UserID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous subscriptions: %w", err)
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := uc.userRepo.SetPremiumFlag(ctx, cmd.UserID, true); err != nil {
		uc.logger.Warnw("failed to set premium flag", "error", err, "user_id", cmd.UserID)
	}

	uc.logger.Infow("premium granted",
		"user_id", cmd.UserID,
		"tier", cmd.Tier.String(),
		"duration_days", durationDays,
	)

	return sub, nil
}

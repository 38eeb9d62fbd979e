package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/payment"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type ActivateSubscriptionCommand struct {
	UserID     int64
	Tier       subscription.Tier
	StarsPaid  int
	PaymentRef string
}

type ActivateSubscriptionResult struct {
	Subscription *subscription.Subscription
	// AlreadyActivated is set when the payment ref was seen before and
	// the original subscription is returned unchanged.
	AlreadyActivated bool
}

// ActivateSubscriptionUseCase turns a completed Stars payment into a paid
// subscription. Replays of the same payment ref are no-ops so provider
// retries cannot double-charge or stack subscriptions.
type ActivateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	paymentRepo      payment.Repository
	statsRepo        stats.Repository
	plans            *subscription.PlanTable
	logger           logger.Interface
}

func NewActivateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	paymentRepo payment.Repository,
	statsRepo stats.Repository,
	plans *subscription.PlanTable,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		paymentRepo:      paymentRepo,
		statsRepo:        statsRepo,
		plans:            plans,
		logger:           logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*ActivateSubscriptionResult, error) {
	if !cmd.Tier.IsPaid() {
		return nil, fmt.Errorf("cannot activate subscription for tier %s", cmd.Tier)
	}

	existing, err := uc.subscriptionRepo.GetByPaymentRef(ctx, cmd.PaymentRef)
	if err == nil {
		uc.logger.Infow("duplicate payment ref, activation skipped",
			"user_id", cmd.UserID,
			"payment_ref", cmd.PaymentRef,
		)
		return &ActivateSubscriptionResult{Subscription: existing, AlreadyActivated: true}, nil
	}
	if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return nil, fmt.Errorf("failed to check payment ref: %w", err)
	}

	plan := uc.plans.PlanFor(cmd.Tier)

	sub, err := subscription.NewSubscription(cmd.UserID, cmd.Tier, cmd.StarsPaid, plan.DurationDays, cmd.PaymentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to build subscription: %w", err)
	}

	// Only one subscription may be active per user.
	if err := uc.subscriptionRepo.DeactivateAllByUserID(ctx, cmd.UserID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous subscriptions: %w", err)
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := uc.userRepo.SetPremiumFlag(ctx, cmd.UserID, true); err != nil {
		uc.logger.Warnw("failed to set premium flag", "error", err, "user_id", cmd.UserID)
	}

	uc.recordPayment(ctx, cmd)

	uc.logger.Infow("subscription activated",
		"user_id", cmd.UserID,
		"tier", cmd.Tier.String(),
		"stars_paid", cmd.StarsPaid,
		"expires_at", sub.ExpiresAt(),
	)

	return &ActivateSubscriptionResult{Subscription: sub}, nil
}

func (uc *ActivateSubscriptionUseCase) recordPayment(ctx context.Context, cmd ActivateSubscriptionCommand) {
	p, err := payment.NewPayment(cmd.UserID, cmd.StarsPaid, "subscription_"+cmd.Tier.String(), cmd.PaymentRef)
	if err != nil {
		uc.logger.Warnw("failed to build payment record", "error", err, "user_id", cmd.UserID)
		return
	}
	p.Complete()

	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		uc.logger.Warnw("failed to persist payment record", "error", err, "payment_ref", cmd.PaymentRef)
		return
	}

	if err := uc.statsRepo.IncrementRevenue(ctx, int64(cmd.StarsPaid)); err != nil {
		uc.logger.Warnw("failed to record revenue", "error", err)
	}
}

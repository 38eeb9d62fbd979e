package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

func testPlans(t *testing.T) *subscription.PlanTable {
	t.Helper()
	plans, err := subscription.NewPlanTable(subscription.DefaultPlanTableParams())
	require.NoError(t, err)
	return plans
}

func activeSubscription(t *testing.T, userID int64, tier subscription.Tier, expiresAt time.Time) *subscription.Subscription {
	t.Helper()
	now := time.Now()
	sub, err := subscription.ReconstructSubscription(1, userID, tier, 100, now.AddDate(0, -1, 0), expiresAt, true, "ref-1", now, now)
	require.NoError(t, err)
	return sub
}

func TestResolveEntitlement_NoSubscriptionFallsToFree(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).
		Return(nil, subscription.ErrSubscriptionNotFound)

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())

	ent, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, subscription.TierFree, ent.Tier)
	assert.Equal(t, 20, ent.MessageCeiling)
	assert.False(t, ent.IsPremium())
	assert.False(t, ent.HasFeature(subscription.FeatureVoice))
}

func TestResolveEntitlement_ActiveSubscriptionGrantsPremium(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	sub := activeSubscription(t, 42, subscription.TierMonthly, time.Now().Add(24*time.Hour))
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).Return(sub, nil)

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())

	ent, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, subscription.TierMonthly, ent.Tier)
	assert.Equal(t, 1000, ent.MessageCeiling)
	assert.True(t, ent.IsPremium())
	assert.True(t, ent.HasFeature(subscription.FeatureVoice))
	assert.True(t, ent.HasFeature(subscription.FeatureVision))
}

func TestResolveEntitlement_ExpiredSubscriptionLazilyDeactivated(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	sub := activeSubscription(t, 42, subscription.TierMonthly, time.Now().Add(-time.Hour))
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(42), false).Return(nil)

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())

	ent, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, subscription.TierFree, ent.Tier)
	assert.Equal(t, 20, ent.MessageCeiling)
	assert.False(t, sub.IsActive())
	subRepo.AssertCalled(t, "Update", mock.Anything, sub)
}

func TestResolveEntitlement_ExpiryAtBoundaryStillFree(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	expiry := time.Now().Add(-time.Minute)
	sub := activeSubscription(t, 42, subscription.TierYearly, expiry)
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(42), false).Return(nil)

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())
	uc.SetClock(func() time.Time { return expiry })

	ent, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, subscription.TierFree, ent.Tier)
}

func TestResolveEntitlement_StoreErrorPropagates(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).
		Return(nil, errors.New("database is locked"))

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())

	ent, err := uc.Execute(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, ent)
}

func TestResolveEntitlement_DeactivationFailurePropagates(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	sub := activeSubscription(t, 42, subscription.TierMonthly, time.Now().Add(-time.Hour))
	subRepo.On("GetLatestActiveByUserID", mock.Anything, int64(42)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(errors.New("write failed"))

	uc := NewResolveEntitlementUseCase(subRepo, userRepo, testPlans(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), 42)
	require.Error(t, err)
}

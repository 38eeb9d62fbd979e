package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/payment"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

func newActivateUseCase(t *testing.T, subRepo *mockSubscriptionRepo, userRepo *mockUserRepo, payRepo *mockPaymentRepo, statsRepo *mockStatsRepo) *ActivateSubscriptionUseCase {
	t.Helper()
	return NewActivateSubscriptionUseCase(subRepo, userRepo, payRepo, statsRepo, testPlans(t), logger.NewLogger())
}

func TestActivateSubscription_MonthlyHappyPath(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	payRepo := new(mockPaymentRepo)
	statsRepo := new(mockStatsRepo)

	subRepo.On("GetByPaymentRef", mock.Anything, "charge-1").
		Return(nil, subscription.ErrSubscriptionNotFound)
	subRepo.On("DeactivateAllByUserID", mock.Anything, int64(42)).Return(nil)
	subRepo.On("Create", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(42), true).Return(nil)
	payRepo.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)
	statsRepo.On("IncrementRevenue", mock.Anything, int64(100)).Return(nil)

	uc := newActivateUseCase(t, subRepo, userRepo, payRepo, statsRepo)

	result, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:     42,
		Tier:       subscription.TierMonthly,
		StarsPaid:  100,
		PaymentRef: "charge-1",
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyActivated)
	assert.Equal(t, subscription.TierMonthly, result.Subscription.Tier())
	assert.True(t, result.Subscription.IsActive())

	// 30-day duration from the monthly plan.
	expectedExpiry := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedExpiry, result.Subscription.ExpiresAt(), time.Minute)

	subRepo.AssertExpectations(t)
	payRepo.AssertExpectations(t)
	statsRepo.AssertExpectations(t)
}

func TestActivateSubscription_DuplicatePaymentRefIsNoOp(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	payRepo := new(mockPaymentRepo)
	statsRepo := new(mockStatsRepo)

	existing := activeSubscription(t, 42, subscription.TierMonthly, time.Now().Add(720*time.Hour))
	subRepo.On("GetByPaymentRef", mock.Anything, "charge-1").Return(existing, nil)

	uc := newActivateUseCase(t, subRepo, userRepo, payRepo, statsRepo)

	result, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:     42,
		Tier:       subscription.TierMonthly,
		StarsPaid:  100,
		PaymentRef: "charge-1",
	})
	require.NoError(t, err)
	assert.True(t, result.AlreadyActivated)
	assert.Same(t, existing, result.Subscription)

	subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	payRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	statsRepo.AssertNotCalled(t, "IncrementRevenue", mock.Anything, mock.Anything)
}

func TestActivateSubscription_RejectsFreeTier(t *testing.T) {
	uc := newActivateUseCase(t, new(mockSubscriptionRepo), new(mockUserRepo), new(mockPaymentRepo), new(mockStatsRepo))

	_, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:     42,
		Tier:       subscription.TierFree,
		PaymentRef: "charge-1",
	})
	require.Error(t, err)
}

func TestActivateSubscription_DeactivatesPreviousSubscription(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	payRepo := new(mockPaymentRepo)
	statsRepo := new(mockStatsRepo)

	subRepo.On("GetByPaymentRef", mock.Anything, "charge-2").
		Return(nil, subscription.ErrSubscriptionNotFound)
	subRepo.On("DeactivateAllByUserID", mock.Anything, int64(42)).Return(nil)
	subRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(42), true).Return(nil)
	payRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	statsRepo.On("IncrementRevenue", mock.Anything, int64(1000)).Return(nil)

	uc := newActivateUseCase(t, subRepo, userRepo, payRepo, statsRepo)

	result, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:     42,
		Tier:       subscription.TierYearly,
		StarsPaid:  1000,
		PaymentRef: "charge-2",
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.TierYearly, result.Subscription.Tier())

	subRepo.AssertCalled(t, "DeactivateAllByUserID", mock.Anything, int64(42))
}

func TestActivateSubscription_PaymentRecordCompleted(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	payRepo := new(mockPaymentRepo)
	statsRepo := new(mockStatsRepo)

	subRepo.On("GetByPaymentRef", mock.Anything, "charge-3").
		Return(nil, subscription.ErrSubscriptionNotFound)
	subRepo.On("DeactivateAllByUserID", mock.Anything, int64(7)).Return(nil)
	subRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(7), true).Return(nil)

	var recorded *payment.Payment
	payRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*payment.Payment)
		}).
		Return(nil)
	statsRepo.On("IncrementRevenue", mock.Anything, int64(100)).Return(nil)

	uc := newActivateUseCase(t, subRepo, userRepo, payRepo, statsRepo)

	_, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:     7,
		Tier:       subscription.TierMonthly,
		StarsPaid:  100,
		PaymentRef: "charge-3",
	})
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, payment.StatusCompleted, recorded.Status())
	assert.Equal(t, "charge-3", recorded.PaymentRef())
}

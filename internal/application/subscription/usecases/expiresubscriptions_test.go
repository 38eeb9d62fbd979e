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

func TestExpireSubscriptions_NoExpiredRows(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	subRepo.On("FindExpiredActive", mock.Anything).Return([]*subscription.Subscription{}, nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, userRepo, logger.NewLogger())

	affected, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, affected)
}

func TestExpireSubscriptions_DeactivatesAndReportsUsers(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)

	past := time.Now().Add(-time.Hour)
	first := activeSubscription(t, 1, subscription.TierMonthly, past)
	second := activeSubscription(t, 2, subscription.TierYearly, past)

	subRepo.On("FindExpiredActive", mock.Anything).
		Return([]*subscription.Subscription{first, second}, nil)
	subRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, mock.Anything, false).Return(nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, userRepo, logger.NewLogger())

	affected, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, affected)
	assert.False(t, first.IsActive())
	assert.False(t, second.IsActive())
}

func TestExpireSubscriptions_PartialFailureKeepsSweeping(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)

	past := time.Now().Add(-time.Hour)
	first := activeSubscription(t, 1, subscription.TierMonthly, past)
	second := activeSubscription(t, 2, subscription.TierMonthly, past)

	subRepo.On("FindExpiredActive", mock.Anything).
		Return([]*subscription.Subscription{first, second}, nil)
	subRepo.On("Update", mock.Anything, first).Return(errors.New("write failed"))
	subRepo.On("Update", mock.Anything, second).Return(nil)
	userRepo.On("SetPremiumFlag", mock.Anything, int64(2), false).Return(nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, userRepo, logger.NewLogger())

	affected, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, affected)
}

func TestExpireSubscriptions_FindErrorPropagates(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	userRepo := new(mockUserRepo)
	subRepo.On("FindExpiredActive", mock.Anything).Return(nil, errors.New("db down"))

	uc := NewExpireSubscriptionsUseCase(subRepo, userRepo, logger.NewLogger())

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
}

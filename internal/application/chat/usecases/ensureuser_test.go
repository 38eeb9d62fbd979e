package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

func TestEnsureUser_CreatesNewUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	statsRepo := new(mockStatsRepo)

	userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(nil, user.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)
	statsRepo.On("IncrementNewUsers", mock.Anything, int64(1)).Return(nil)

	uc := NewEnsureUserUseCase(userRepo, statsRepo, logger.NewLogger())

	u, err := uc.Execute(context.Background(), EnsureUserCommand{
		TelegramID:   42,
		Username:     "tester",
		FirstName:    "Test",
		LanguageCode: "ru",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.TelegramID())
	assert.Equal(t, "ru", u.LanguageCode())

	statsRepo.AssertCalled(t, "IncrementNewUsers", mock.Anything, int64(1))
}

func TestEnsureUser_ExistingUserIdentityRefreshed(t *testing.T) {
	userRepo := new(mockUserRepo)
	statsRepo := new(mockStatsRepo)

	existing := testUser(t, 42, false)
	userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	uc := NewEnsureUserUseCase(userRepo, statsRepo, logger.NewLogger())

	u, err := uc.Execute(context.Background(), EnsureUserCommand{
		TelegramID: 42,
		Username:   "renamed",
		FirstName:  "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", u.Username())
	assert.Equal(t, "New", u.FirstName())

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	statsRepo.AssertNotCalled(t, "IncrementNewUsers", mock.Anything, mock.Anything)
}

func TestEnsureUser_LanguageFollowsTelegramClient(t *testing.T) {
	userRepo := new(mockUserRepo)
	statsRepo := new(mockStatsRepo)

	existing := testUser(t, 42, false)
	require.Equal(t, "en", existing.LanguageCode())
	userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	uc := NewEnsureUserUseCase(userRepo, statsRepo, logger.NewLogger())

	u, err := uc.Execute(context.Background(), EnsureUserCommand{
		TelegramID:   42,
		Username:     "tester",
		LanguageCode: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, "es", u.LanguageCode())
}

func TestEnsureUser_EmptyLanguageKeepsStoredOne(t *testing.T) {
	userRepo := new(mockUserRepo)
	statsRepo := new(mockStatsRepo)

	existing := testUser(t, 42, false)
	userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(existing, nil)
	userRepo.On("Update", mock.Anything, existing).Return(nil)

	uc := NewEnsureUserUseCase(userRepo, statsRepo, logger.NewLogger())

	u, err := uc.Execute(context.Background(), EnsureUserCommand{
		TelegramID: 42,
		Username:   "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, "en", u.LanguageCode())
}

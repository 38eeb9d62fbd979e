package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type EnsureUserCommand struct {
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// EnsureUserUseCase upserts the sender on every inbound update so later
// steps always have a persisted user to work with.
type EnsureUserUseCase struct {
	userRepo  user.Repository
	statsRepo stats.Repository
	logger    logger.Interface
}

func NewEnsureUserUseCase(userRepo user.Repository, statsRepo stats.Repository, logger logger.Interface) *EnsureUserUseCase {
	return &EnsureUserUseCase{
		userRepo:  userRepo,
		statsRepo: statsRepo,
		logger:    logger,
	}
}

func (uc *EnsureUserUseCase) Execute(ctx context.Context, cmd EnsureUserCommand) (*user.User, error) {
	existing, err := uc.userRepo.GetByTelegramID(ctx, cmd.TelegramID)
	if err == nil {
		existing.UpdateIdentity(cmd.Username, cmd.FirstName, cmd.LastName)
		// The language follows the Telegram client; an update without a
		// language code keeps the stored one.
		if cmd.LanguageCode != "" && cmd.LanguageCode != existing.LanguageCode() {
			if langErr := existing.SetLanguage(cmd.LanguageCode); langErr != nil {
				uc.logger.Warnw("failed to update language", "error", langErr, "user_id", cmd.TelegramID)
			}
		}
		if updateErr := uc.userRepo.Update(ctx, existing); updateErr != nil {
			uc.logger.Warnw("failed to refresh user identity", "error", updateErr, "user_id", cmd.TelegramID)
		}
		return existing, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	newUser, err := user.NewUser(cmd.TelegramID, cmd.Username, cmd.FirstName, cmd.LastName, cmd.LanguageCode)
	if err != nil {
		return nil, fmt.Errorf("failed to build user: %w", err)
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uc.statsRepo.IncrementNewUsers(ctx, 1); err != nil {
		uc.logger.Warnw("failed to count new user", "error", err)
	}

	uc.logger.Infow("new user registered",
		"user_id", cmd.TelegramID,
		"username", cmd.Username,
		"language", cmd.LanguageCode,
	)

	return newUser, nil
}

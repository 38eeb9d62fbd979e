package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// BanUserUseCase blocks a user from the bot entirely. Banned users are
// rejected before entitlement resolution and never reach a model.
type BanUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewBanUserUseCase(userRepo user.Repository, logger logger.Interface) *BanUserUseCase {
	return &BanUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *BanUserUseCase) Execute(ctx context.Context, userID int64) error {
	u, err := uc.userRepo.GetByTelegramID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	u.Ban()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	uc.logger.Infow("user banned", "user_id", userID)
	return nil
}

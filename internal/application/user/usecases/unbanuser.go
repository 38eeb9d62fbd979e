package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type UnbanUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUnbanUserUseCase(userRepo user.Repository, logger logger.Interface) *UnbanUserUseCase {
	return &UnbanUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UnbanUserUseCase) Execute(ctx context.Context, userID int64) error {
	u, err := uc.userRepo.GetByTelegramID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	u.Unban()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}

	uc.logger.Infow("user unbanned", "user_id", userID)
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// ClearConversationUseCase wipes a user's history so the next reply
// starts from a blank context.
type ClearConversationUseCase struct {
	convRepo conversation.Repository
	logger   logger.Interface
}

func NewClearConversationUseCase(convRepo conversation.Repository, logger logger.Interface) *ClearConversationUseCase {
	return &ClearConversationUseCase{
		convRepo: convRepo,
		logger:   logger,
	}
}

func (uc *ClearConversationUseCase) Execute(ctx context.Context, userID int64) error {
	if err := uc.convRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}

	uc.logger.Infow("conversation cleared", "user_id", userID)
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	apperrors "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/errors"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// ProviderCatalog exposes the configured provider IDs for selection.
type ProviderCatalog interface {
	Providers() []string
	HasProvider(id string) bool
}

// SetPreferredModelUseCase stores which provider a user wants tried
// first. An empty ID restores the configured priority order.
type SetPreferredModelUseCase struct {
	userRepo user.Repository
	catalog  ProviderCatalog
	logger   logger.Interface
}

func NewSetPreferredModelUseCase(userRepo user.Repository, catalog ProviderCatalog, logger logger.Interface) *SetPreferredModelUseCase {
	return &SetPreferredModelUseCase{
		userRepo: userRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

func (uc *SetPreferredModelUseCase) Execute(ctx context.Context, userID int64, providerID string) error {
	if providerID != "" && !uc.catalog.HasProvider(providerID) {
		return apperrors.NewValidationError("unknown model", providerID)
	}

	u, err := uc.userRepo.GetByTelegramID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	u.SetPreferredModel(providerID)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to save model preference: %w", err)
	}

	uc.logger.Infow("model preference updated", "user_id", userID, "model", providerID)
	return nil
}

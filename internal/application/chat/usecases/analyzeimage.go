package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/dto"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/services"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type AnalyzeImageCommand struct {
	UserID    int64
	ImageData []byte
	MimeType  string
	Caption   string
}

// AnalyzeImageUseCase handles photo messages. Vision is a paid-tier
// feature, checked after the ban gate and before the rate limit.
type AnalyzeImageUseCase struct {
	userRepo   user.Repository
	convRepo   conversation.Repository
	statsRepo  stats.Repository
	resolver   EntitlementResolver
	limiter    RateLimiter
	dispatcher ModelDispatcher
	logger     logger.Interface
}

func NewAnalyzeImageUseCase(
	userRepo user.Repository,
	convRepo conversation.Repository,
	statsRepo stats.Repository,
	resolver EntitlementResolver,
	limiter RateLimiter,
	dispatcher ModelDispatcher,
	logger logger.Interface,
) *AnalyzeImageUseCase {
	return &AnalyzeImageUseCase{
		userRepo:   userRepo,
		convRepo:   convRepo,
		statsRepo:  statsRepo,
		resolver:   resolver,
		limiter:    limiter,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *AnalyzeImageUseCase) Execute(ctx context.Context, cmd AnalyzeImageCommand) (*dto.Outcome, error) {
	u, err := uc.userRepo.GetByTelegramID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if u.IsBanned() {
		return dto.BannedOutcome(), nil
	}

	ent, err := uc.resolver.Execute(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if !ent.HasFeature(subscription.FeatureVision) {
		return nil, ErrFeatureNotEntitled
	}

	decision := uc.limiter.Allow(cmd.UserID, ent.MessageCeiling)
	if !decision.Allowed {
		return dto.RateLimitedOutcome(decision.Current, decision.Ceiling, decision.RetryAfter, ent.IsPremium()), nil
	}

	result, err := uc.dispatcher.Analyze(ctx, u.PreferredModel(), cmd.ImageData, cmd.MimeType, cmd.Caption)
	if err != nil {
		if errors.Is(err, services.ErrAllProvidersFailed) {
			return dto.AllProvidersFailedOutcome(), nil
		}
		return nil, err
	}

	uc.persistImageTurn(ctx, cmd.UserID, cmd.Caption, result.Text, result.ModelID, result.TokensUsed)

	return dto.OkOutcome(result.Text, result.ModelID, result.TokensUsed), nil
}

func (uc *AnalyzeImageUseCase) persistImageTurn(ctx context.Context, userID int64, caption, reply, modelID string, tokens int) {
	prompt := "[photo]"
	if caption != "" {
		prompt = "[photo] " + caption
	}

	if userMsg, err := conversation.NewMessage(userID, conversation.RoleUser, prompt); err == nil {
		if err := uc.convRepo.Append(ctx, userMsg); err != nil {
			uc.logger.Warnw("failed to persist photo message", "error", err, "user_id", userID)
		}
	}

	if botMsg, err := conversation.NewAssistantMessage(userID, reply, modelID, tokens); err == nil {
		if err := uc.convRepo.Append(ctx, botMsg); err != nil {
			uc.logger.Warnw("failed to persist assistant message", "error", err, "user_id", userID)
		}
	}

	if err := uc.userRepo.RecordUsage(ctx, userID, tokens); err != nil {
		uc.logger.Warnw("failed to record usage", "error", err, "user_id", userID)
	}

	if err := uc.statsRepo.IncrementMessages(ctx, 1, int64(tokens)); err != nil {
		uc.logger.Warnw("failed to record message stats", "error", err)
	}
}

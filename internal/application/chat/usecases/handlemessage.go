package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/dto"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/services"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/utils/logutil"
)

type HandleMessageCommand struct {
	UserID int64
	Text   string
}

// HandleMessageUseCase is the admission pipeline for a text message:
// ban gate, entitlement resolution, rate limit, then model dispatch.
// The gates run in that order so a banned or throttled user never
// consumes a model call.
type HandleMessageUseCase struct {
	userRepo   user.Repository
	convRepo   conversation.Repository
	statsRepo  stats.Repository
	resolver   EntitlementResolver
	limiter    RateLimiter
	dispatcher ModelDispatcher
	maxContext int
	logger     logger.Interface
}

func NewHandleMessageUseCase(
	userRepo user.Repository,
	convRepo conversation.Repository,
	statsRepo stats.Repository,
	resolver EntitlementResolver,
	limiter RateLimiter,
	dispatcher ModelDispatcher,
	maxContext int,
	logger logger.Interface,
) *HandleMessageUseCase {
	return &HandleMessageUseCase{
		userRepo:   userRepo,
		convRepo:   convRepo,
		statsRepo:  statsRepo,
		resolver:   resolver,
		limiter:    limiter,
		dispatcher: dispatcher,
		maxContext: maxContext,
		logger:     logger,
	}
}

func (uc *HandleMessageUseCase) Execute(ctx context.Context, cmd HandleMessageCommand) (*dto.Outcome, error) {
	u, err := uc.userRepo.GetByTelegramID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if u.IsBanned() {
		uc.logger.Infow("message from banned user dropped", "user_id", cmd.UserID)
		return dto.BannedOutcome(), nil
	}

	ent, err := uc.resolver.Execute(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	decision := uc.limiter.Allow(cmd.UserID, ent.MessageCeiling)
	if !decision.Allowed {
		uc.logger.Infow("message rate limited",
			"user_id", cmd.UserID,
			"current", decision.Current,
			"ceiling", decision.Ceiling,
			"retry_after", decision.RetryAfter,
		)
		return dto.RateLimitedOutcome(decision.Current, decision.Ceiling, decision.RetryAfter, ent.IsPremium()), nil
	}

	history := uc.loadHistory(ctx, cmd.UserID)

	uc.logger.Debugw("dispatching prompt",
		"user_id", cmd.UserID,
		"preferred_model", u.PreferredModel(),
		"history_len", len(history),
		"text", logutil.TruncateForLog(cmd.Text, 64),
	)

	result, err := uc.dispatcher.Generate(ctx, u.PreferredModel(), history, cmd.Text)
	if err != nil {
		if errors.Is(err, services.ErrAllProvidersFailed) {
			return dto.AllProvidersFailedOutcome(), nil
		}
		return nil, err
	}

	uc.persistTurn(ctx, cmd.UserID, cmd.Text, result.Text, result.ModelID, result.TokensUsed)

	return dto.OkOutcome(result.Text, result.ModelID, result.TokensUsed), nil
}

func (uc *HandleMessageUseCase) loadHistory(ctx context.Context, userID int64) []aiprovider.Message {
	msgs, err := uc.convRepo.RecentByUserID(ctx, userID, uc.maxContext)
	if err != nil {
		// A reply without context beats no reply.
		uc.logger.Warnw("failed to load history, replying without context", "error", err, "user_id", userID)
		return nil
	}

	history := make([]aiprovider.Message, 0, len(msgs))
	for _, m := range msgs {
		role := aiprovider.RoleUser
		if m.Role() == conversation.RoleAssistant {
			role = aiprovider.RoleAssistant
		}
		history = append(history, aiprovider.Message{Role: role, Content: m.Content()})
	}
	return history
}

func (uc *HandleMessageUseCase) persistTurn(ctx context.Context, userID int64, prompt, reply, modelID string, tokens int) {
	if userMsg, err := conversation.NewMessage(userID, conversation.RoleUser, prompt); err == nil {
		if err := uc.convRepo.Append(ctx, userMsg); err != nil {
			uc.logger.Warnw("failed to persist user message", "error", err, "user_id", userID)
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

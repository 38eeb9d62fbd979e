package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/dto"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/services"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type HandleVoiceCommand struct {
	UserID    int64
	AudioData []byte
	MimeType  string
}

type HandleVoiceResult struct {
	Transcript string
	Outcome    *dto.Outcome
}

// HandleVoiceUseCase transcribes a voice note and feeds the transcript
// through the regular message pipeline. Voice is a paid-tier feature.
// The transcription itself is not rate limited; the generated reply is,
// via the inner message use case.
type HandleVoiceUseCase struct {
	userRepo      user.Repository
	resolver      EntitlementResolver
	dispatcher    ModelDispatcher
	handleMessage *HandleMessageUseCase
	logger        logger.Interface
}

func NewHandleVoiceUseCase(
	userRepo user.Repository,
	resolver EntitlementResolver,
	dispatcher ModelDispatcher,
	handleMessage *HandleMessageUseCase,
	logger logger.Interface,
) *HandleVoiceUseCase {
	return &HandleVoiceUseCase{
		userRepo:      userRepo,
		resolver:      resolver,
		dispatcher:    dispatcher,
		handleMessage: handleMessage,
		logger:        logger,
	}
}

func (uc *HandleVoiceUseCase) Execute(ctx context.Context, cmd HandleVoiceCommand) (*HandleVoiceResult, error) {
	u, err := uc.userRepo.GetByTelegramID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if u.IsBanned() {
		return &HandleVoiceResult{Outcome: dto.BannedOutcome()}, nil
	}

	ent, err := uc.resolver.Execute(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if !ent.HasFeature(subscription.FeatureVoice) {
		return nil, ErrFeatureNotEntitled
	}

	transcription, err := uc.dispatcher.Transcribe(ctx, u.PreferredModel(), cmd.AudioData, cmd.MimeType)
	if err != nil {
		if errors.Is(err, services.ErrAllProvidersFailed) {
			return &HandleVoiceResult{Outcome: dto.AllProvidersFailedOutcome()}, nil
		}
		return nil, err
	}

	uc.logger.Debugw("voice transcribed",
		"user_id", cmd.UserID,
		"transcript_len", len(transcription.Text),
	)

	outcome, err := uc.handleMessage.Execute(ctx, HandleMessageCommand{
		UserID: cmd.UserID,
		Text:   transcription.Text,
	})
	if err != nil {
		return nil, err
	}

	return &HandleVoiceResult{
		Transcript: transcription.Text,
		Outcome:    outcome,
	}, nil
}

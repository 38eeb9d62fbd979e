package bot

import (
	"context"
	"errors"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/dto"
	chatusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram/i18n"
)

func (r *Router) handleText(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	_ = r.bot.SendChatAction(msg.Chat.ID, "typing")

	outcome, err := r.usecases.HandleMessage.Execute(ctx, chatusecases.HandleMessageCommand{
		UserID: msg.From.ID,
		Text:   msg.Text,
	})
	if err != nil {
		r.logger.Errorw("failed to handle message", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	r.respondOutcome(msg.Chat.ID, lang, outcome)
}

func (r *Router) handlePhoto(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	_ = r.bot.SendChatAction(msg.Chat.ID, "typing")

	// Telegram orders photo sizes ascending; take the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	data, err := r.bot.DownloadFile(ctx, fileID)
	if err != nil {
		r.logger.Errorw("failed to download photo", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	outcome, err := r.usecases.AnalyzeImage.Execute(ctx, chatusecases.AnalyzeImageCommand{
		UserID:    msg.From.ID,
		ImageData: data,
		MimeType:  "image/jpeg",
		Caption:   msg.Caption,
	})
	if err != nil {
		if errors.Is(err, chatusecases.ErrFeatureNotEntitled) {
			r.send(msg.Chat.ID, i18n.MsgFeatureLocked(lang))
			return
		}
		r.logger.Errorw("failed to analyze photo", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	r.respondOutcome(msg.Chat.ID, lang, outcome)
}

func (r *Router) handleVoice(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	_ = r.bot.SendChatAction(msg.Chat.ID, "typing")

	data, err := r.bot.DownloadFile(ctx, msg.Voice.FileID)
	if err != nil {
		r.logger.Errorw("failed to download voice", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	mimeType := msg.Voice.MimeType
	if mimeType == "" {
		mimeType = "audio/ogg"
	}

	result, err := r.usecases.HandleVoice.Execute(ctx, chatusecases.HandleVoiceCommand{
		UserID:    msg.From.ID,
		AudioData: data,
		MimeType:  mimeType,
	})
	if err != nil {
		if errors.Is(err, chatusecases.ErrFeatureNotEntitled) {
			r.send(msg.Chat.ID, i18n.MsgFeatureLocked(lang))
			return
		}
		r.logger.Errorw("failed to handle voice", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	r.respondOutcome(msg.Chat.ID, lang, result.Outcome)
}

func (r *Router) respondOutcome(chatID int64, lang i18n.Lang, outcome *dto.Outcome) {
	switch outcome.Status {
	case dto.StatusOk:
		r.sendReply(chatID, outcome.ReplyText)
	case dto.StatusRateLimited:
		r.send(chatID, i18n.MsgRateLimited(lang, outcome.CurrentCount, outcome.MessageCeiling, outcome.RetryAfter, outcome.IsPremium))
	case dto.StatusAllProvidersFailed:
		r.send(chatID, i18n.MsgAllProvidersFailed(lang))
	case dto.StatusBanned:
		r.send(chatID, i18n.MsgBanned(lang))
	}
}

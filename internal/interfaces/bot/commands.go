package bot

import (
	"context"
	"strings"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram/i18n"
	apperrors "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/errors"
)

func (r *Router) handleCommand(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	parts := strings.Fields(msg.Text)
	command := strings.TrimPrefix(parts[0], "/")
	// Strip the @botname suffix used in groups.
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	args := parts[1:]

	switch command {
	case "start":
		r.send(msg.Chat.ID, i18n.MsgStart(lang, msg.From.FirstName))
	case "help":
		r.send(msg.Chat.ID, i18n.MsgHelp(lang))
	case "subscribe":
		r.cmdSubscribe(msg, lang)
	case "status":
		r.cmdStatus(ctx, msg, lang)
	case "model":
		r.cmdModel(ctx, msg, lang, args)
	case "clear":
		r.cmdClear(ctx, msg, lang)
	case "ban", "unban", "grant", "revoke", "stats":
		r.handleAdminCommand(ctx, msg, command, args)
	default:
		r.send(msg.Chat.ID, i18n.MsgUnknownCommand(lang))
	}
}

func (r *Router) cmdSubscribe(msg *telegram.Message, lang i18n.Lang) {
	monthly := r.plans.PlanFor(subscription.TierMonthly)
	yearly := r.plans.PlanFor(subscription.TierYearly)

	keyboard := telegram.NewInlineKeyboard(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton(i18n.BtnMonthly(lang, monthly.PriceStars), "subscribe:monthly"),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton(i18n.BtnYearly(lang, yearly.PriceStars), "subscribe:yearly"),
		),
	)

	text := i18n.MsgSubscribeIntro(lang, monthly.PriceStars, yearly.PriceStars)
	if err := r.bot.SendMessageWithInlineKeyboard(msg.Chat.ID, text, keyboard); err != nil {
		r.logger.Errorw("failed to send subscribe menu", "error", err, "chat_id", msg.Chat.ID)
	}
}

func (r *Router) cmdStatus(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	ent, err := r.usecases.ResolveEntitlement.Execute(ctx, msg.From.ID)
	if err != nil {
		r.logger.Errorw("failed to resolve status", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	decision := r.limiter.Check(msg.From.ID, ent.MessageCeiling)
	tierName := r.plans.PlanFor(ent.Tier).Name
	r.send(msg.Chat.ID, i18n.MsgStatus(lang, tierName, decision.Current, ent.MessageCeiling, ent.ExpiresAt))
}

func (r *Router) cmdModel(ctx context.Context, msg *telegram.Message, lang i18n.Lang, args []string) {
	if len(args) == 0 {
		current := ""
		if u, err := r.usecases.EnsureUser.Execute(ctx, ensureCommandFrom(msg)); err == nil {
			current = u.PreferredModel()
		}
		r.send(msg.Chat.ID, i18n.MsgModelList(lang, r.catalog.Providers(), current))
		return
	}

	model := args[0]
	if err := r.usecases.SetPreferredModel.Execute(ctx, msg.From.ID, model); err != nil {
		if apperrors.IsValidationError(err) {
			// Unknown model name; show the list instead of a generic error.
			r.send(msg.Chat.ID, i18n.MsgModelList(lang, r.catalog.Providers(), ""))
			return
		}
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}
	r.send(msg.Chat.ID, i18n.MsgModelSet(lang, model))
}

func (r *Router) cmdClear(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	if err := r.usecases.ClearConversation.Execute(ctx, msg.From.ID); err != nil {
		r.logger.Errorw("failed to clear conversation", "error", err, "user_id", msg.From.ID)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}
	r.send(msg.Chat.ID, i18n.MsgCleared(lang))
}

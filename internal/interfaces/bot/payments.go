package bot

import (
	"context"
	"strings"

	subusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/subscription/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram/i18n"
)

const invoicePayloadPrefix = "sub:"

// handleCallback reacts to inline keyboard presses, currently only the
// plan selection buttons.
func (r *Router) handleCallback(ctx context.Context, query *telegram.CallbackQuery) {
	if query.From == nil {
		return
	}
	lang := i18n.DetectLang(query.From.LanguageCode)

	if strings.HasPrefix(query.Data, "subscribe:") {
		tierName := strings.TrimPrefix(query.Data, "subscribe:")
		tier, err := subscription.ParseTier(tierName)
		if err != nil || !tier.IsPaid() {
			_ = r.bot.AnswerCallbackQuery(query.ID, "")
			return
		}

		plan := r.plans.PlanFor(tier)
		chatID := query.From.ID
		if query.Message != nil && query.Message.Chat != nil {
			chatID = query.Message.Chat.ID
		}

		payload := invoicePayloadPrefix + tier.String()
		if err := r.bot.SendStarsInvoice(chatID, plan.Name, planDescription(lang, plan), payload, plan.PriceStars); err != nil {
			r.logger.Errorw("failed to send invoice", "error", err, "user_id", query.From.ID)
			_ = r.bot.AnswerCallbackQuery(query.ID, i18n.MsgError(lang))
			return
		}
	}

	_ = r.bot.AnswerCallbackQuery(query.ID, "")
}

// handlePreCheckout approves payments whose payload names a known paid
// tier. Telegram requires an answer within 10 seconds.
func (r *Router) handlePreCheckout(query *telegram.PreCheckoutQuery) {
	tierName := strings.TrimPrefix(query.InvoicePayload, invoicePayloadPrefix)
	tier, err := subscription.ParseTier(tierName)
	ok := err == nil && tier.IsPaid()

	errorMessage := ""
	if !ok {
		errorMessage = "Unknown subscription plan"
		r.logger.Warnw("rejecting pre-checkout with unknown payload",
			"payload", query.InvoicePayload,
			"user_id", query.From.ID,
		)
	}

	if err := r.bot.AnswerPreCheckoutQuery(query.ID, ok, errorMessage); err != nil {
		r.logger.Errorw("failed to answer pre-checkout", "error", err, "user_id", query.From.ID)
	}
}

func (r *Router) handleSuccessfulPayment(ctx context.Context, msg *telegram.Message, lang i18n.Lang) {
	pay := msg.SuccessfulPayment
	tierName := strings.TrimPrefix(pay.InvoicePayload, invoicePayloadPrefix)
	tier, err := subscription.ParseTier(tierName)
	if err != nil || !tier.IsPaid() {
		r.logger.Errorw("successful payment with unknown payload",
			"payload", pay.InvoicePayload,
			"user_id", msg.From.ID,
		)
		return
	}

	result, err := r.usecases.ActivateSubscription.Execute(ctx, subusecases.ActivateSubscriptionCommand{
		UserID:     msg.From.ID,
		Tier:       tier,
		StarsPaid:  pay.TotalAmount,
		PaymentRef: pay.TelegramPaymentChargeID,
	})
	if err != nil {
		// The user paid; log loudly and apologize rather than drop silently.
		r.logger.Errorw("failed to activate paid subscription",
			"error", err,
			"user_id", msg.From.ID,
			"charge_id", pay.TelegramPaymentChargeID,
		)
		r.send(msg.Chat.ID, i18n.MsgError(lang))
		return
	}

	if result.AlreadyActivated {
		r.logger.Infow("duplicate payment confirmation ignored",
			"user_id", msg.From.ID,
			"charge_id", pay.TelegramPaymentChargeID,
		)
	}

	plan := r.plans.PlanFor(tier)
	r.send(msg.Chat.ID, i18n.MsgPaymentSuccess(lang, plan.Name, result.Subscription.ExpiresAt()))
}

func planDescription(lang i18n.Lang, plan subscription.Plan) string {
	switch lang {
	case i18n.RU:
		return "Премиум-доступ: 1000 сообщений в час, голос и фото"
	case i18n.ES:
		return "Acceso premium: 1000 mensajes por hora, voz y fotos"
	default:
		return "Premium access: 1000 messages per hour, voice and photos"
	}
}

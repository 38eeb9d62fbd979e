// Package bot routes Telegram updates to application use cases.
package bot

import (
	"context"
	"strings"

	chatusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/usecases"
	statsusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/stats/usecases"
	subusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/subscription/usecases"
	userusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/user/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram/i18n"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/markdown"
)

// UseCases bundles the application entry points the router needs.
type UseCases struct {
	EnsureUser           *chatusecases.EnsureUserUseCase
	HandleMessage        *chatusecases.HandleMessageUseCase
	AnalyzeImage         *chatusecases.AnalyzeImageUseCase
	HandleVoice          *chatusecases.HandleVoiceUseCase
	ClearConversation    *chatusecases.ClearConversationUseCase
	SetPreferredModel    *chatusecases.SetPreferredModelUseCase
	ResolveEntitlement   *subusecases.ResolveEntitlementUseCase
	ActivateSubscription *subusecases.ActivateSubscriptionUseCase
	GrantPremium         *subusecases.GrantPremiumUseCase
	RevokeSubscription   *subusecases.RevokeSubscriptionUseCase
	BanUser              *userusecases.BanUserUseCase
	UnbanUser            *userusecases.UnbanUserUseCase
	GetBotStats          *statsusecases.GetBotStatsUseCase
}

// Router implements telegram.UpdateHandler. Every update first upserts
// the sender, then dispatches on update kind.
type Router struct {
	bot         *telegram.BotService
	renderer    markdown.Renderer
	usecases    UseCases
	limiter     chatusecases.RateLimiter
	catalog     chatusecases.ProviderCatalog
	plans       *subscription.PlanTable
	adminUserID int64
	logger      logger.Interface
}

func NewRouter(
	bot *telegram.BotService,
	renderer markdown.Renderer,
	usecases UseCases,
	limiter chatusecases.RateLimiter,
	catalog chatusecases.ProviderCatalog,
	plans *subscription.PlanTable,
	adminUserID int64,
	log logger.Interface,
) *Router {
	return &Router{
		bot:         bot,
		renderer:    renderer,
		usecases:    usecases,
		limiter:     limiter,
		catalog:     catalog,
		plans:       plans,
		adminUserID: adminUserID,
		logger:      log,
	}
}

var _ telegram.UpdateHandler = (*Router)(nil)

func (r *Router) HandleUpdate(ctx context.Context, update *telegram.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		r.handlePreCheckout(update.PreCheckoutQuery)
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil || msg.From.IsBot || msg.Chat == nil {
		return
	}

	u, err := r.usecases.EnsureUser.Execute(ctx, chatusecases.EnsureUserCommand{
		TelegramID:   msg.From.ID,
		Username:     msg.From.Username,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		LanguageCode: msg.From.LanguageCode,
	})
	if err != nil {
		r.logger.Errorw("failed to upsert user", "error", err, "user_id", msg.From.ID)
		return
	}
	lang := i18n.DetectLang(u.LanguageCode())

	switch {
	case msg.SuccessfulPayment != nil:
		r.handleSuccessfulPayment(ctx, msg, lang)
	case strings.HasPrefix(msg.Text, "/"):
		r.handleCommand(ctx, msg, lang)
	case msg.Voice != nil:
		r.handleVoice(ctx, msg, lang)
	case len(msg.Photo) > 0:
		r.handlePhoto(ctx, msg, lang)
	case msg.Text != "":
		r.handleText(ctx, msg, lang)
	}
}

// sendReply renders model markdown to Telegram HTML, falling back to
// plain text when rendering or sending fails.
func (r *Router) sendReply(chatID int64, markdownText string) {
	html, err := r.renderer.ToTelegramHTML(markdownText)
	if err == nil {
		if err = r.bot.SendMessage(chatID, html); err == nil {
			return
		}
	}

	r.logger.Warnw("html send failed, falling back to plain text", "error", err, "chat_id", chatID)
	if err := r.bot.SendMessagePlain(chatID, markdownText); err != nil {
		r.logger.Errorw("failed to send reply", "error", err, "chat_id", chatID)
	}
}

func (r *Router) send(chatID int64, html string) {
	if err := r.bot.SendMessage(chatID, html); err != nil {
		r.logger.Errorw("failed to send message", "error", err, "chat_id", chatID)
	}
}

func (r *Router) isAdmin(userID int64) bool {
	return r.adminUserID != 0 && userID == r.adminUserID
}

func ensureCommandFrom(msg *telegram.Message) chatusecases.EnsureUserCommand {
	return chatusecases.EnsureUserCommand{
		TelegramID:   msg.From.ID,
		Username:     msg.From.Username,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		LanguageCode: msg.From.LanguageCode,
	}
}

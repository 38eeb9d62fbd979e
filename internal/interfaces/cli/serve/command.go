// Package serve wires the bot together and runs it.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	chatservices "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/services"
	chatusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/usecases"
	statsusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/stats/usecases"
	subusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/subscription/usecases"
	userusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/user/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/ai"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/config"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/database"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/ratelimit"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/repository"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	botiface "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/interfaces/bot"
	httpiface "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/interfaces/http"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/goroutine"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/markdown"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Telegram bot",
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	plans, err := subscription.NewPlanTable(subscription.PlanTableParams{
		FreeMessageCeiling:    cfg.Subscription.FreeMessageCeiling,
		PremiumMessageCeiling: cfg.Subscription.PremiumMessageCeiling,
		MonthlyPriceStars:     cfg.Subscription.MonthlyPriceStars,
		YearlyPriceStars:      cfg.Subscription.YearlyPriceStars,
	})
	if err != nil {
		return fmt.Errorf("invalid subscription config: %w", err)
	}

	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	convRepo := repository.NewConversationRepository(db)
	payRepo := repository.NewPaymentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	limiter := ratelimit.NewSlidingWindowLimiter(cfg.RateLimit.Window())

	providers, err := ai.BuildProviders(&cfg.AI, log)
	if err != nil {
		return fmt.Errorf("failed to build providers: %w", err)
	}
	dispatcher := chatservices.NewDispatcher(providers, cfg.AI.AttemptTimeout(), log.Named("dispatcher"))

	resolver := subusecases.NewResolveEntitlementUseCase(subRepo, userRepo, plans, log.Named("entitlement"))
	handleMessage := chatusecases.NewHandleMessageUseCase(
		userRepo, convRepo, statsRepo,
		resolver, limiter, dispatcher,
		cfg.AI.MaxContextMessages, log.Named("chat"),
	)

	usecases := botiface.UseCases{
		EnsureUser:           chatusecases.NewEnsureUserUseCase(userRepo, statsRepo, log.Named("users")),
		HandleMessage:        handleMessage,
		AnalyzeImage:         chatusecases.NewAnalyzeImageUseCase(userRepo, convRepo, statsRepo, resolver, limiter, dispatcher, log.Named("vision")),
		HandleVoice:          chatusecases.NewHandleVoiceUseCase(userRepo, resolver, dispatcher, handleMessage, log.Named("voice")),
		ClearConversation:    chatusecases.NewClearConversationUseCase(convRepo, log.Named("chat")),
		SetPreferredModel:    chatusecases.NewSetPreferredModelUseCase(userRepo, dispatcher, log.Named("chat")),
		ResolveEntitlement:   resolver,
		ActivateSubscription: subusecases.NewActivateSubscriptionUseCase(subRepo, userRepo, payRepo, statsRepo, plans, log.Named("billing")),
		GrantPremium:         subusecases.NewGrantPremiumUseCase(subRepo, userRepo, plans, log.Named("billing")),
		RevokeSubscription:   subusecases.NewRevokeSubscriptionUseCase(subRepo, userRepo, log.Named("billing")),
		BanUser:              userusecases.NewBanUserUseCase(userRepo, log.Named("admin")),
		UnbanUser:            userusecases.NewUnbanUserUseCase(userRepo, log.Named("admin")),
		GetBotStats:          statsusecases.NewGetBotStatsUseCase(statsRepo, log.Named("admin")),
	}

	botService := telegram.NewBotService(cfg.Telegram)
	router := botiface.NewRouter(
		botService, markdown.NewRenderer(), usecases,
		limiter, dispatcher, plans,
		cfg.Telegram.AdminUserID, log.Named("router"),
	)

	if err := botService.SetMyCommands(defaultCommands()); err != nil {
		log.Warnw("failed to publish command menu", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The limiter's windows live in this process, so its cleanup ticker
	// must run here rather than in the worker binary.
	goroutine.SafeGo(log, "limiter-cleanup", func() {
		ticker := time.NewTicker(cfg.RateLimit.CleanupInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.CleanupOldEntries()
			}
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.Telegram.Mode {
	case "webhook":
		server := httpiface.NewWebhookServer(cfg.Server, cfg.Telegram.WebhookSecret, router, log.Named("webhook"))
		if err := botService.SetWebhook(cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}

		goroutine.SafeGo(log, "webhook-server", func() {
			if err := server.Start(); err != nil {
				log.Errorw("webhook server failed", "error", err)
			}
		})

		<-quit
		log.Infow("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("webhook server shutdown failed", "error", err)
		}

	default:
		polling := telegram.NewPollingService(botService, router, cfg.Telegram.PollTimeout, cfg.Telegram.WorkerCount, log.Named("polling"))
		if err := polling.Start(ctx); err != nil {
			return fmt.Errorf("failed to start polling: %w", err)
		}

		<-quit
		log.Infow("shutting down")
		polling.Stop()
	}

	return nil
}

func defaultCommands() []telegram.BotCommand {
	return []telegram.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "help", Description: "Show help"},
		{Command: "subscribe", Description: "Buy premium"},
		{Command: "status", Description: "Plan and limits"},
		{Command: "model", Description: "Pick a model"},
		{Command: "clear", Description: "Wipe history"},
	}
}

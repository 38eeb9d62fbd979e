package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	subusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/subscription/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/config"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/database"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/repository"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

const sweepInterval = 10 * time.Minute

// The worker sweeps expired subscriptions so a paying user who goes
// quiet still loses premium on time. Lazy checks in the bot cover
// active users; this covers the rest.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewLogger()
	log.Infow("starting subscription expiry worker")

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	subRepo := repository.NewSubscriptionRepository(database.Get())
	userRepo := repository.NewUserRepository(database.Get())
	expire := subusecases.NewExpireSubscriptionsUseCase(subRepo, userRepo, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	runSweep(ctx, expire, log)
	log.Infow("expiry worker started", "interval", sweepInterval)

	for {
		select {
		case <-ticker.C:
			runSweep(ctx, expire, log)

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)
			return
		}
	}
}

func runSweep(ctx context.Context, expire *subusecases.ExpireSubscriptionsUseCase, log logger.Interface) {
	sweepCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	expired, err := expire.Execute(sweepCtx)
	if err != nil {
		log.Errorw("expiry sweep failed", "error", err)
		return
	}
	if len(expired) > 0 {
		log.Infow("expired subscriptions deactivated", "count", len(expired), "user_ids", expired)
	}
}

package usecases

import (
	"context"
	"fmt"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type BotStatsReport struct {
	Today  *stats.DailyStats
	Totals *stats.Totals
}

// GetBotStatsUseCase assembles the admin usage report.
type GetBotStatsUseCase struct {
	statsRepo stats.Repository
	logger    logger.Interface
}

func NewGetBotStatsUseCase(statsRepo stats.Repository, logger logger.Interface) *GetBotStatsUseCase {
	return &GetBotStatsUseCase{statsRepo: statsRepo, logger: logger}
}

func (uc *GetBotStatsUseCase) Execute(ctx context.Context) (*BotStatsReport, error) {
	today, err := uc.statsRepo.GetToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's stats: %w", err)
	}

	totals, err := uc.statsRepo.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}

	return &BotStatsReport{Today: today, Totals: totals}, nil
}

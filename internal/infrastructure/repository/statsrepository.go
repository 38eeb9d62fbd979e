package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func (r *StatsRepository) increment(ctx context.Context, updates map[string]interface{}) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stat_date"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(&models.DailyStatsModel{StatDate: today()}).Error
	if err != nil {
		return fmt.Errorf("failed to upsert daily stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) IncrementMessages(ctx context.Context, count, tokens int64) error {
	return r.increment(ctx, map[string]interface{}{
		"total_messages": gorm.Expr("total_messages + ?", count),
		"total_tokens":   gorm.Expr("total_tokens + ?", tokens),
	})
}

func (r *StatsRepository) IncrementNewUsers(ctx context.Context, count int64) error {
	return r.increment(ctx, map[string]interface{}{
		"new_users": gorm.Expr("new_users + ?", count),
	})
}

func (r *StatsRepository) IncrementRevenue(ctx context.Context, starsAmount int64) error {
	return r.increment(ctx, map[string]interface{}{
		"revenue_stars": gorm.Expr("revenue_stars + ?", starsAmount),
	})
}

func (r *StatsRepository) GetToday(ctx context.Context) (*stats.DailyStats, error) {
	var model models.DailyStatsModel

	if err := r.db.WithContext(ctx).
		Where("stat_date = ?", today()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &stats.DailyStats{Date: time.Now()}, nil
		}
		return nil, fmt.Errorf("failed to get today's stats: %w", err)
	}

	date, _ := time.Parse("2006-01-02", model.StatDate)
	return &stats.DailyStats{
		Date:          date,
		TotalMessages: model.TotalMessages,
		NewUsers:      model.NewUsers,
		TotalTokens:   model.TotalTokens,
		RevenueStars:  model.RevenueStars,
	}, nil
}

func (r *StatsRepository) GetTotals(ctx context.Context) (*stats.Totals, error) {
	var totals stats.Totals

	row := r.db.WithContext(ctx).
		Model(&models.DailyStatsModel{}).
		Select("COALESCE(SUM(total_messages), 0) AS total_messages, COALESCE(SUM(total_tokens), 0) AS total_tokens, COALESCE(SUM(revenue_stars), 0) AS revenue_stars").
		Row()
	if err := row.Scan(&totals.TotalMessages, &totals.TotalTokens, &totals.RevenueStars); err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	var users int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totals.TotalUsers = users

	return &totals, nil
}

package stats

import "context"

// Repository accumulates daily counters. All increments upsert today's row.
type Repository interface {
	IncrementMessages(ctx context.Context, count, tokens int64) error
	IncrementNewUsers(ctx context.Context, count int64) error
	IncrementRevenue(ctx context.Context, stars int64) error

	GetToday(ctx context.Context) (*DailyStats, error)
	GetTotals(ctx context.Context) (*Totals, error)
}

package stats

import "time"

// DailyStats is one day's aggregate counters.
type DailyStats struct {
	Date          time.Time
	TotalMessages int64
	NewUsers      int64
	TotalTokens   int64
	RevenueStars  int64
}

// Totals is the all-time aggregate used by the admin report.
type Totals struct {
	TotalMessages int64
	TotalTokens   int64
	RevenueStars  int64
	TotalUsers    int64
}

package reports

import (
	"context"
)

// Repository defines report data access. Implementations aggregate in SQL;
// "today" means the current UTC calendar date.
type Repository interface {
	GetTotals(ctx context.Context) (*Totals, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)

	// GetDailyReport returns per-date buckets of delivered orders, newest
	// date first, at most days entries.
	GetDailyReport(ctx context.Context, days int) ([]DailyEntry, error)
}

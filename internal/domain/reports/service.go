package reports

import (
	"context"
	"fmt"

	"paneerflow/internal/core/tx"
)

// DefaultReportDays is the daily report window when the caller does not ask
// for a specific number of days.
const DefaultReportDays = 7

// Service provides report generation operations.
// All queries run in read-only transactions.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Totals returns the all-time aggregate view.
func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	var totals *Totals
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		totals, err = s.repo.GetTotals(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get totals: %w", err)
	}
	return totals, nil
}

// DashboardStats returns the combined dashboard view.
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats *DashboardStats
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.repo.GetDashboardStats(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	return stats, nil
}

// DailyReport returns per-date revenue/cost/profit, newest first.
// days is clamped to [1, 90] with DefaultReportDays when unset.
func (s *Service) DailyReport(ctx context.Context, days int) ([]DailyEntry, error) {
	if days <= 0 {
		days = DefaultReportDays
	}
	if days > 90 {
		days = 90
	}

	var entries []DailyEntry
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		entries, err = s.repo.GetDailyReport(ctx, days)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get daily report: %w", err)
	}
	return entries, nil
}

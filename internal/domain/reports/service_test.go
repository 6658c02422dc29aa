package reports

import (
	"context"
	"errors"
	"testing"
)

type readOnlyTx struct {
	readOnlyCalls int
}

func (t *readOnlyTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (t *readOnlyTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.readOnlyCalls++
	return fn(ctx)
}

type fakeReportRepo struct {
	lastDays int
	err      error
}

func (f *fakeReportRepo) GetTotals(context.Context) (*Totals, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Totals{}, nil
}

func (f *fakeReportRepo) GetDashboardStats(context.Context) (*DashboardStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &DashboardStats{}, nil
}

func (f *fakeReportRepo) GetDailyReport(_ context.Context, days int) ([]DailyEntry, error) {
	f.lastDays = days
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func TestDailyReportClampsDays(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewService(repo, &readOnlyTx{})
	ctx := context.Background()

	tests := []struct {
		days int
		want int
	}{
		{0, DefaultReportDays},
		{-5, DefaultReportDays},
		{30, 30},
		{365, 90},
	}

	for _, tt := range tests {
		if _, err := svc.DailyReport(ctx, tt.days); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastDays != tt.want {
			t.Errorf("days %d: want %d passed to repo, got %d", tt.days, tt.want, repo.lastDays)
		}
	}
}

func TestReportsRunReadOnly(t *testing.T) {
	txm := &readOnlyTx{}
	svc := NewService(&fakeReportRepo{}, txm)
	ctx := context.Background()

	if _, err := svc.Totals(ctx); err != nil {
		t.Fatalf("totals: %v", err)
	}
	if _, err := svc.DashboardStats(ctx); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if _, err := svc.DailyReport(ctx, 7); err != nil {
		t.Fatalf("daily: %v", err)
	}

	if txm.readOnlyCalls != 3 {
		t.Errorf("want 3 read-only transactions, got %d", txm.readOnlyCalls)
	}
}

func TestReportErrorsPropagate(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("connection reset")}
	svc := NewService(repo, &readOnlyTx{})
	ctx := context.Background()

	if _, err := svc.Totals(ctx); err == nil {
		t.Error("totals: want error")
	}
	if _, err := svc.DashboardStats(ctx); err == nil {
		t.Error("dashboard: want error")
	}
	if _, err := svc.DailyReport(ctx, 7); err == nil {
		t.Error("daily: want error")
	}
}

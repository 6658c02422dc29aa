// Package report_repo provides the PostgreSQL implementation of the
// reporting queries. All aggregation happens in SQL; Go only reshapes rows.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/orders"
	"paneerflow/internal/domain/reports"
	"paneerflow/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// Quantities are stored scaled by 1e4 and prices by 1e2, so
// quantity * price_per_kg / 1e4 yields an amount at money scale.
const costExpr = `ROUND(SUM(o.quantity::numeric * COALESCE(o.purchase_price, s.purchase_price_per_kg)::numeric / 10000))::bigint`

const totalsQuery = `
	SELECT
		COALESCE(SUM(o.quantity) FILTER (WHERE o.status = $1), 0)::bigint     AS total_sold_qty,
		COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = $1), 0)::bigint AS total_revenue,
		COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = $2), 0)::bigint AS pending_amount,
		(SELECT COUNT(*) FROM batches)                                        AS batches_count,
		(SELECT current_stock FROM stock WHERE id = 1)                        AS current_stock
	FROM orders o
`

// GetTotals returns the all-time aggregate view.
func (r *ReportRepo) GetTotals(ctx context.Context) (*reports.Totals, error) {
	var row struct {
		TotalSoldQty  int64 `db:"total_sold_qty"`
		TotalRevenue  int64 `db:"total_revenue"`
		PendingAmount int64 `db:"pending_amount"`
		BatchesCount  int64 `db:"batches_count"`
		CurrentStock  int64 `db:"current_stock"`
	}

	querier := r.txManager.GetQuerier(ctx)
	err := pgxscan.Get(ctx, querier, &row, totalsQuery, orders.StatusDelivered, orders.StatusPending)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("totals query: %w", err))
	}

	return &reports.Totals{
		TotalSoldQty:  types.NewQuantityFromInt64Scaled(row.TotalSoldQty),
		TotalRevenue:  types.NewMoneyFromInt64Scaled(row.TotalRevenue),
		BatchesCount:  row.BatchesCount,
		PendingAmount: types.NewMoneyFromInt64Scaled(row.PendingAmount),
		CurrentStock:  types.NewQuantityFromInt64Scaled(row.CurrentStock),
	}, nil
}

const dashboardQuery = `
	WITH order_stats AS (
		SELECT
			COUNT(*)                                                          AS total,
			COUNT(*) FILTER (WHERE status = $1)                               AS completed,
			COUNT(*) FILTER (WHERE status = $2)                               AS pending,
			COALESCE(SUM(quantity) FILTER (WHERE status = $1), 0)::bigint     AS total_sold_qty
		FROM orders
	),
	today_financials AS (
		SELECT
			COALESCE(SUM(o.total_amount), 0)::bigint AS daily_revenue,
			COALESCE(` + costExpr + `, 0)            AS daily_cost
		FROM orders o
		CROSS JOIN stock s
		WHERE s.id = 1
		  AND o.status = $1
		  AND (o.delivery_time AT TIME ZONE 'UTC')::date = (now() AT TIME ZONE 'UTC')::date
	),
	today_arrival AS (
		SELECT COALESCE(SUM(quantity), 0)::bigint AS today_arrival
		FROM batches
		WHERE (received_at AT TIME ZONE 'UTC')::date = (now() AT TIME ZONE 'UTC')::date
	)
	SELECT
		os.total, os.completed, os.pending, os.total_sold_qty,
		s.current_stock, s.selling_price_per_kg, s.purchase_price_per_kg,
		ta.today_arrival,
		tf.daily_revenue, tf.daily_cost
	FROM order_stats os
	CROSS JOIN today_financials tf
	CROSS JOIN today_arrival ta
	CROSS JOIN stock s
	WHERE s.id = 1
`

// GetDashboardStats returns the combined dashboard view in one round trip.
func (r *ReportRepo) GetDashboardStats(ctx context.Context) (*reports.DashboardStats, error) {
	var row struct {
		Total              int64 `db:"total"`
		Completed          int64 `db:"completed"`
		Pending            int64 `db:"pending"`
		TotalSoldQty       int64 `db:"total_sold_qty"`
		CurrentStock       int64 `db:"current_stock"`
		SellingPricePerKg  int64 `db:"selling_price_per_kg"`
		PurchasePricePerKg int64 `db:"purchase_price_per_kg"`
		TodayArrival       int64 `db:"today_arrival"`
		DailyRevenue       int64 `db:"daily_revenue"`
		DailyCost          int64 `db:"daily_cost"`
	}

	querier := r.txManager.GetQuerier(ctx)
	err := pgxscan.Get(ctx, querier, &row, dashboardQuery, orders.StatusDelivered, orders.StatusPending)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("dashboard query: %w", err))
	}

	return &reports.DashboardStats{
		Orders: reports.OrderStats{
			Total:        row.Total,
			Completed:    row.Completed,
			Pending:      row.Pending,
			TotalSoldQty: types.NewQuantityFromInt64Scaled(row.TotalSoldQty),
		},
		Stock: reports.StockStats{
			CurrentStock:       types.NewQuantityFromInt64Scaled(row.CurrentStock),
			SellingPricePerKg:  types.NewMoneyFromInt64Scaled(row.SellingPricePerKg),
			PurchasePricePerKg: types.NewMoneyFromInt64Scaled(row.PurchasePricePerKg),
			TodayArrival:       types.NewQuantityFromInt64Scaled(row.TodayArrival),
		},
		Financials: reports.Financials{
			DailyRevenue: types.NewMoneyFromInt64Scaled(row.DailyRevenue),
			DailyCost:    types.NewMoneyFromInt64Scaled(row.DailyCost),
			DailyProfit:  types.NewMoneyFromInt64Scaled(row.DailyRevenue - row.DailyCost),
		},
	}, nil
}

const dailyReportQuery = `
	SELECT
		to_char((o.delivery_time AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS date,
		COALESCE(SUM(o.total_amount), 0)::bigint                          AS revenue,
		COALESCE(` + costExpr + `, 0)                                     AS cost
	FROM orders o
	CROSS JOIN stock s
	WHERE s.id = 1 AND o.status = $1
	GROUP BY (o.delivery_time AT TIME ZONE 'UTC')::date
	ORDER BY (o.delivery_time AT TIME ZONE 'UTC')::date DESC
	LIMIT $2
`

// GetDailyReport buckets delivered orders by UTC delivery date.
func (r *ReportRepo) GetDailyReport(ctx context.Context, days int) ([]reports.DailyEntry, error) {
	var rows []struct {
		Date    string `db:"date"`
		Revenue int64  `db:"revenue"`
		Cost    int64  `db:"cost"`
	}

	querier := r.txManager.GetQuerier(ctx)
	err := pgxscan.Select(ctx, querier, &rows, dailyReportQuery, orders.StatusDelivered, days)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("daily report query: %w", err))
	}

	entries := make([]reports.DailyEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, reports.DailyEntry{
			Date:    row.Date,
			Revenue: types.NewMoneyFromInt64Scaled(row.Revenue),
			Cost:    types.NewMoneyFromInt64Scaled(row.Cost),
			Profit:  types.NewMoneyFromInt64Scaled(row.Revenue - row.Cost),
		})
	}

	return entries, nil
}

var _ reports.Repository = (*ReportRepo)(nil)

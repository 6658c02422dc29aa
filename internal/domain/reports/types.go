// Package reports derives aggregate and time-bucketed financial views from
// the order book and the batch log. All operations are read-only.
package reports

import (
	"paneerflow/internal/core/types"
)

// Totals is the all-time aggregate view: sold quantity and revenue over
// delivered orders, outstanding amount over pending ones.
type Totals struct {
	TotalSoldQty  types.Quantity `json:"total_sold_qty"`
	TotalRevenue  types.Money    `json:"total_revenue"`
	BatchesCount  int64          `json:"batches_count"`
	PendingAmount types.Money    `json:"pending_amount"`
	CurrentStock  types.Quantity `json:"current_stock"`
}

// OrderStats counts orders by state.
type OrderStats struct {
	Total        int64          `json:"total"`
	Completed    int64          `json:"completed"`
	Pending      int64          `json:"pending"`
	TotalSoldQty types.Quantity `json:"total_sold_qty"`
}

// StockStats is the ledger snapshot plus today's arrivals.
type StockStats struct {
	CurrentStock       types.Quantity `json:"current_stock"`
	SellingPricePerKg  types.Money    `json:"selling_price_per_kg"`
	PurchasePricePerKg types.Money    `json:"purchase_price_per_kg"`
	TodayArrival       types.Quantity `json:"today_arrival"`
}

// Financials is today's revenue, cost and profit over delivered orders.
// Cost per order uses the frozen purchase price when present and falls back
// to the ledger's current purchase price for legacy rows.
type Financials struct {
	DailyRevenue types.Money `json:"daily_revenue"`
	DailyCost    types.Money `json:"daily_cost"`
	DailyProfit  types.Money `json:"daily_profit"`
}

// DashboardStats is the combined admin dashboard view.
type DashboardStats struct {
	Orders     OrderStats `json:"orders"`
	Stock      StockStats `json:"stock"`
	Financials Financials `json:"financials"`
}

// DailyEntry is one calendar-date bucket of delivered orders.
// Date is the UTC date portion of delivery_time, formatted YYYY-MM-DD.
type DailyEntry struct {
	Date    string      `json:"date"`
	Revenue types.Money `json:"revenue"`
	Cost    types.Money `json:"cost"`
	Profit  types.Money `json:"profit"`
}

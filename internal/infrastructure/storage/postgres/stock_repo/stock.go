// Package stock_repo provides the PostgreSQL implementation of the stock
// ledger and batch log repository.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/stock"
	"paneerflow/internal/infrastructure/storage/postgres"
)

const (
	stockTable   = "stock"
	batchesTable = "batches"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// Get returns the ledger snapshot.
func (r *StockRepo) Get(ctx context.Context) (stock.Ledger, error) {
	var ledger stock.Ledger

	q := r.builder.Select(
		"id", "current_stock", "selling_price_per_kg", "purchase_price_per_kg", "updated_at",
	).From(stockTable).
		Where(squirrel.Eq{"id": stock.LedgerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &ledger, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger, apperror.NewNotFound("stock ledger", stock.LedgerID)
		}
		return ledger, fmt.Errorf("get ledger: %w", err)
	}

	return ledger, nil
}

// GetForUpdate returns the ledger with a pessimistic row lock. All ledger
// writers serialize on this lock.
func (r *StockRepo) GetForUpdate(ctx context.Context) (stock.Ledger, error) {
	var ledger stock.Ledger

	sql := `
		SELECT id, current_stock, selling_price_per_kg, purchase_price_per_kg, updated_at
		FROM stock
		WHERE id = $1
		FOR UPDATE
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &ledger, sql, stock.LedgerID); err != nil {
		if pgxscan.NotFound(err) {
			return ledger, apperror.NewNotFound("stock ledger", stock.LedgerID)
		}
		return ledger, fmt.Errorf("get ledger for update: %w", err)
	}

	return ledger, nil
}

// ApplyReceipt increments current stock and replaces the purchase price.
func (r *StockRepo) ApplyReceipt(ctx context.Context, quantity types.Quantity, purchasePrice types.Money) error {
	sql := `
		UPDATE stock
		SET current_stock = current_stock + $1,
		    purchase_price_per_kg = $2,
		    updated_at = now()
		WHERE id = $3
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, quantity.Int64Scaled(), purchasePrice.Int64Scaled(), stock.LedgerID)
	if err != nil {
		return fmt.Errorf("apply receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock ledger", stock.LedgerID)
	}

	return nil
}

// ApplyDelivery decrements current stock only when enough is on hand.
// The guard makes concurrent oversell impossible regardless of what the
// caller read before.
func (r *StockRepo) ApplyDelivery(ctx context.Context, quantity types.Quantity) (bool, error) {
	sql := `
		UPDATE stock
		SET current_stock = current_stock - $1,
		    updated_at = now()
		WHERE id = $2 AND current_stock >= $1
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, quantity.Int64Scaled(), stock.LedgerID)
	if err != nil {
		return false, fmt.Errorf("apply delivery: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// SetSellingPrice updates the prevailing selling price.
func (r *StockRepo) SetSellingPrice(ctx context.Context, price types.Money) error {
	sql := `
		UPDATE stock
		SET selling_price_per_kg = $1,
		    updated_at = now()
		WHERE id = $2
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, price.Int64Scaled(), stock.LedgerID)
	if err != nil {
		return fmt.Errorf("set selling price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock ledger", stock.LedgerID)
	}

	return nil
}

// RecordBatch appends a receipt event.
func (r *StockRepo) RecordBatch(ctx context.Context, batch *stock.Batch) (int64, error) {
	q := r.builder.Insert(batchesTable).
		Columns("quantity", "purchase_price", "previous_stock", "updated_stock", "received_at").
		Values(
			batch.Quantity.Int64Scaled(),
			batch.PurchasePrice.Int64Scaled(),
			batch.PreviousStock.Int64Scaled(),
			batch.UpdatedStock.Int64Scaled(),
			batch.ReceivedAt,
		).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var batchID int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&batchID); err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}

	return batchID, nil
}

// ListBatches returns recent batches, newest first.
func (r *StockRepo) ListBatches(ctx context.Context, limit int) ([]stock.Batch, error) {
	q := r.builder.Select(
		"id", "quantity", "purchase_price", "previous_stock", "updated_stock", "received_at",
	).From(batchesTable).
		OrderBy("received_at DESC", "id DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []stock.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}

	return batches, nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)

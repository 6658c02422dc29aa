// Package order_repo provides the PostgreSQL implementation of the order
// book and the per-order transaction log.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/orders"
	"paneerflow/internal/infrastructure/storage/postgres"
)

const (
	ordersTable       = "orders"
	transactionsTable = "transactions"
)

// OrderRepo implements orders.Repository.
type OrderRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

var orderColumns = []string{
	"id", "customer_name", "shop_name", "order_type", "quantity",
	"selling_price", "purchase_price", "total_amount", "delivery_time",
	"status", "created_at",
}

// Create inserts an order and returns its assigned id.
func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) (int64, error) {
	q := r.builder.Insert(ordersTable).
		Columns(
			"customer_name", "shop_name", "order_type", "quantity",
			"selling_price", "purchase_price", "total_amount",
			"delivery_time", "status",
		).
		Values(
			order.CustomerName,
			order.ShopName,
			order.OrderType,
			order.Quantity.Int64Scaled(),
			order.SellingPrice.Int64Scaled(),
			moneyPtr(order.PurchasePrice),
			order.TotalAmount.Int64Scaled(),
			order.DeliveryTime,
			order.Status,
		).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	return order.ID, nil
}

// GetByID returns a single order.
func (r *OrderRepo) GetByID(ctx context.Context, orderID int64) (*orders.Order, error) {
	q := r.builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var order orders.Order
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &order, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", orderID)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

// List returns orders sorted by delivery time ascending, optionally
// filtered by status.
func (r *OrderRepo) List(ctx context.Context, status *orders.Status) ([]orders.Order, error) {
	q := r.builder.Select(orderColumns...).
		From(ordersTable).
		OrderBy("delivery_time ASC", "id ASC")

	if status != nil {
		q = q.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var result []orders.Order
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &result, sql, args...); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}

	return result, nil
}

// MarkDelivered flips a pending order to delivered. Returns false when the
// order was not pending, so a concurrent second delivery loses cleanly.
func (r *OrderRepo) MarkDelivered(ctx context.Context, orderID int64) (bool, error) {
	sql := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, orders.StatusDelivered, orderID, orders.StatusPending)
	if err != nil {
		return false, fmt.Errorf("mark delivered: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func moneyPtr(m *types.Money) any {
	if m == nil {
		return nil
	}
	return m.Int64Scaled()
}

// TransactionRepo implements orders.TransactionRepository.
type TransactionRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewTransactionRepo creates a new transaction repository.
func NewTransactionRepo(txManager *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// Create appends a payment record for a delivered order.
func (r *TransactionRepo) Create(ctx context.Context, txn *orders.Transaction) (int64, error) {
	q := r.builder.Insert(transactionsTable).
		Columns("order_id", "amount", "payment_mode").
		Values(txn.OrderID, txn.Amount.Int64Scaled(), txn.PaymentMode).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&txn.ID, &txn.CreatedAt); err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	return txn.ID, nil
}

// ListByOrder returns the payment records of one order.
func (r *TransactionRepo) ListByOrder(ctx context.Context, orderID int64) ([]orders.Transaction, error) {
	q := r.builder.Select("id", "order_id", "amount", "payment_mode", "created_at").
		From(transactionsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var result []orders.Transaction
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &result, sql, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	return result, nil
}

var (
	_ orders.Repository            = (*OrderRepo)(nil)
	_ orders.TransactionRepository = (*TransactionRepo)(nil)
)

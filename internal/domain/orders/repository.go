package orders

import (
	"context"
)

// Repository defines persistence operations for the order book.
type Repository interface {
	// Create appends a new order and returns its id.
	Create(ctx context.Context, order *Order) (int64, error)

	// GetByID returns one order or a NOT_FOUND error.
	GetByID(ctx context.Context, id int64) (*Order, error)

	// List returns orders ascending by delivery time, optionally filtered by status.
	List(ctx context.Context, status *Status) ([]Order, error)

	// MarkDelivered flips status Pending -> Delivered. Returns false when the
	// order was not in Pending state (already delivered), with no mutation.
	MarkDelivered(ctx context.Context, id int64) (bool, error)
}

// TransactionRepository defines the append-only payment log.
type TransactionRepository interface {
	// Create appends a payment record and returns its id.
	Create(ctx context.Context, txn *Transaction) (int64, error)

	// ListByOrder returns payments recorded for an order.
	ListByOrder(ctx context.Context, orderID int64) ([]Transaction, error)
}

package stock

import (
	"context"

	"paneerflow/internal/core/types"
)

// Repository defines persistence operations for the ledger and batch log.
type Repository interface {
	// Get returns the ledger snapshot.
	Get(ctx context.Context) (Ledger, error)

	// GetForUpdate returns the ledger with a pessimistic row lock.
	// Must be called within a transaction; serializes all ledger writers.
	GetForUpdate(ctx context.Context) (Ledger, error)

	// ApplyReceipt increments current stock and updates the purchase price.
	// The selling price is untouched.
	ApplyReceipt(ctx context.Context, quantity types.Quantity, purchasePrice types.Money) error

	// ApplyDelivery decrements current stock as a conditional update guarded
	// by current_stock >= quantity. Returns false when the guard rejects the
	// decrement (insufficient stock), with no mutation.
	ApplyDelivery(ctx context.Context, quantity types.Quantity) (bool, error)

	// SetSellingPrice updates the prevailing selling price per kg.
	SetSellingPrice(ctx context.Context, price types.Money) error

	// RecordBatch appends a receipt event and returns its id.
	RecordBatch(ctx context.Context, batch *Batch) (int64, error)

	// ListBatches returns the most recent batches, newest first.
	ListBatches(ctx context.Context, limit int) ([]Batch, error)
}

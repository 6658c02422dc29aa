// Package stock provides the stock ledger and the batch receipt log.
package stock

import (
	"time"

	"paneerflow/internal/core/types"
)

// LedgerID addresses the single ledger row. The ledger is a singleton by
// schema constraint; every operation goes through this fixed identity.
const LedgerID int16 = 1

// Ledger is the current stock position: quantity on hand and prevailing prices.
type Ledger struct {
	ID                 int16          `db:"id" json:"-"`
	CurrentStock       types.Quantity `db:"current_stock" json:"current_stock"`
	SellingPricePerKg  types.Money    `db:"selling_price_per_kg" json:"selling_price_per_kg"`
	PurchasePricePerKg types.Money    `db:"purchase_price_per_kg" json:"purchase_price_per_kg"`
	UpdatedAt          time.Time      `db:"updated_at" json:"-"`
}

// Batch is a discrete stock-receipt event. Immutable once recorded;
// PreviousStock and UpdatedStock snapshot the ledger around the receipt.
type Batch struct {
	ID            int64          `db:"id" json:"id"`
	Quantity      types.Quantity `db:"quantity" json:"quantity"`
	PurchasePrice types.Money    `db:"purchase_price" json:"purchase_price"`
	PreviousStock types.Quantity `db:"previous_stock" json:"previous_stock"`
	UpdatedStock  types.Quantity `db:"updated_stock" json:"updated_stock"`
	ReceivedAt    time.Time      `db:"received_at" json:"timestamp"`
}

package dto

import (
	"time"

	"paneerflow/internal/core/types"
)

// ReceiveBatchRequest records an incoming paneer batch.
type ReceiveBatchRequest struct {
	Quantity      types.Quantity `json:"quantity" binding:"required"`
	PurchasePrice types.Money    `json:"purchase_price"`
	ReceivedAt    *time.Time     `json:"timestamp"`
}

// SetPriceRequest updates the prevailing selling price.
type SetPriceRequest struct {
	SellingPricePerKg types.Money `json:"selling_price_per_kg" binding:"required"`
}

// Package orders provides the order book, the deliver workflow and the
// payment transaction log.
package orders

import (
	"time"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
)

// Status is the order lifecycle state. Transitions Pending -> Delivered
// exactly once, never reversed.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusDelivered Status = "Delivered"
)

// ParseStatus validates a status filter value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDelivered:
		return Status(s), nil
	default:
		return "", apperror.NewValidation("status must be Pending or Delivered").WithDetail("status", s)
	}
}

// PaymentMode is how a delivered order was paid.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentUPI    PaymentMode = "UPI"
	PaymentCredit PaymentMode = "Credit"
)

// ParsePaymentMode validates a payment mode value.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentCash, PaymentUPI, PaymentCredit:
		return PaymentMode(s), nil
	default:
		return "", apperror.NewValidation("payment mode must be Cash, UPI or Credit").WithDetail("payment_mode", s)
	}
}

// Order is a customer request for a quantity at a locked-in price.
// Pricing is frozen at creation: SellingPrice and TotalAmount never change
// even if the ledger price moves later. PurchasePrice is the frozen cost
// basis; nil on legacy rows that predate cost capture.
type Order struct {
	ID            int64          `db:"id" json:"id"`
	CustomerName  string         `db:"customer_name" json:"customer_name"`
	ShopName      *string        `db:"shop_name" json:"shop_name,omitempty"`
	OrderType     string         `db:"order_type" json:"type"`
	Quantity      types.Quantity `db:"quantity" json:"quantity"`
	SellingPrice  types.Money    `db:"selling_price" json:"selling_price"`
	PurchasePrice *types.Money   `db:"purchase_price" json:"purchase_price,omitempty"`
	TotalAmount   types.Money    `db:"total_amount" json:"total_amount"`
	DeliveryTime  time.Time      `db:"delivery_time" json:"delivery_time"`
	Status        Status         `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// Transaction is a recorded payment for a delivered order. One per order,
// amount equal to the order's frozen total.
type Transaction struct {
	ID          int64       `db:"id" json:"id"`
	OrderID     int64       `db:"order_id" json:"order_id"`
	Amount      types.Money `db:"amount" json:"amount"`
	PaymentMode PaymentMode `db:"payment_mode" json:"payment_mode"`
	CreatedAt   time.Time   `db:"created_at" json:"timestamp"`
}

// CreateInput carries the fields accepted when creating an order.
// SellingPrice nil means "use the ledger's current selling price".
type CreateInput struct {
	CustomerName string
	ShopName     *string
	OrderType    string
	Quantity     types.Quantity
	SellingPrice *types.Money
	DeliveryTime time.Time
}

// Validate checks creation input before any store access.
func (in CreateInput) Validate() error {
	if in.CustomerName == "" {
		return apperror.NewValidation("customer_name is required").WithDetail("field", "customer_name")
	}
	if !in.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
	}
	if in.SellingPrice != nil && in.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling_price must not be negative").WithDetail("field", "selling_price")
	}
	if in.DeliveryTime.IsZero() {
		return apperror.NewValidation("delivery_time is required").WithDetail("field", "delivery_time")
	}
	return nil
}

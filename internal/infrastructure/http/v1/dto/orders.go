package dto

import (
	"time"

	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/orders"
)

// CreateOrderRequest records a new order.
type CreateOrderRequest struct {
	CustomerName string         `json:"customer_name" binding:"required"`
	ShopName     *string        `json:"shop_name"`
	OrderType    string         `json:"type"`
	Quantity     types.Quantity `json:"quantity" binding:"required"`
	SellingPrice *types.Money   `json:"selling_price"`
	DeliveryTime time.Time      `json:"delivery_time" binding:"required"`
}

// ToInput converts to the domain creation input.
func (r *CreateOrderRequest) ToInput() orders.CreateInput {
	return orders.CreateInput{
		CustomerName: r.CustomerName,
		ShopName:     r.ShopName,
		OrderType:    r.OrderType,
		Quantity:     r.Quantity,
		SellingPrice: r.SellingPrice,
		DeliveryTime: r.DeliveryTime,
	}
}

// OrderCreatedResponse acknowledges order creation.
type OrderCreatedResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// DeliverRequest marks an order delivered and records the payment.
type DeliverRequest struct {
	OrderID     int64  `json:"orderId" binding:"required"`
	PaymentMode string `json:"paymentMode" binding:"required"`
}

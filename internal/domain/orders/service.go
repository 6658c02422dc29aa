package orders

import (
	"context"
	"fmt"
	"time"

	"paneerflow/internal/core/apperror"
	appctx "paneerflow/internal/core/context"
	"paneerflow/internal/core/tx"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/audit"
	"paneerflow/internal/domain/stock"
	"paneerflow/pkg/logger"
)

// Service provides business operations for the order book, including the
// deliver workflow that keeps stock, order status and the transaction log
// mutually consistent.
type Service struct {
	repo      Repository
	txnRepo   TransactionRepository
	stockRepo stock.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new orders service.
func NewService(
	repo Repository,
	txnRepo TransactionRepository,
	stockRepo stock.Repository,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		txnRepo:   txnRepo,
		stockRepo: stockRepo,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create records a new Pending order. The selling price defaults to the
// ledger's current price and the ledger's purchase price is frozen as the
// order's cost basis; the total is computed once and never recomputed.
// Creation deliberately does not check stock levels.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var order Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ledger, err := s.stockRepo.Get(ctx)
		if err != nil {
			return err
		}

		price := ledger.SellingPricePerKg
		if in.SellingPrice != nil {
			price = *in.SellingPrice
		}
		cost := ledger.PurchasePricePerKg

		order = Order{
			CustomerName:  in.CustomerName,
			ShopName:      in.ShopName,
			OrderType:     in.OrderType,
			Quantity:      in.Quantity,
			SellingPrice:  price,
			PurchasePrice: &cost,
			TotalAmount:   types.Amount(in.Quantity, price),
			DeliveryTime:  in.DeliveryTime,
			Status:        StatusPending,
			CreatedAt:     time.Now().UTC(),
		}

		orderID, err := s.repo.Create(ctx, &order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		order.ID = orderID

		return s.auditor.Record(ctx, audit.Entry{
			Entity:   "order",
			EntityID: orderID,
			Action:   audit.ActionOrderCreated,
			Changes: map[string]any{
				"customer_name": order.CustomerName,
				"quantity":      order.Quantity.String(),
				"selling_price": order.SellingPrice.String(),
				"total_amount":  order.TotalAmount.String(),
			},
			ActorID: appctx.GetUserID(ctx),
			At:      order.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created",
		"order_id", order.ID,
		"customer", order.CustomerName,
		"total_amount", order.TotalAmount.Float64(),
	)
	return &order, nil
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders ascending by delivery time. statusFilter may be empty.
func (s *Service) List(ctx context.Context, statusFilter string) ([]Order, error) {
	var status *Status
	if statusFilter != "" {
		parsed, err := ParseStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}
	return s.repo.List(ctx, status)
}

// Deliver fulfills an order: it consumes stock, flips the order to Delivered
// and records the payment, all inside one transaction. Business-rule failures
// (unknown order, repeated delivery, insufficient stock) are detected before
// any mutation and roll the whole operation back.
//
// The ledger row lock plus the conditional decrement close the
// read-check-write race: two concurrent deliveries can never both pass the
// sufficiency check against the same stock level.
func (s *Service) Deliver(ctx context.Context, orderID int64, paymentMode PaymentMode) (*Transaction, error) {
	if _, err := ParsePaymentMode(string(paymentMode)); err != nil {
		return nil, err
	}

	var txn Transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status == StatusDelivered {
			return apperror.NewAlreadyDelivered(orderID)
		}

		ledger, err := s.stockRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if ledger.CurrentStock < order.Quantity {
			return apperror.NewInsufficientStock(order.Quantity.Float64(), ledger.CurrentStock.Float64())
		}

		ok, err := s.stockRepo.ApplyDelivery(ctx, order.Quantity)
		if err != nil {
			return fmt.Errorf("apply delivery: %w", err)
		}
		if !ok {
			return apperror.NewInsufficientStock(order.Quantity.Float64(), ledger.CurrentStock.Float64())
		}

		ok, err = s.repo.MarkDelivered(ctx, orderID)
		if err != nil {
			return fmt.Errorf("mark delivered: %w", err)
		}
		if !ok {
			return apperror.NewAlreadyDelivered(orderID)
		}

		txn = Transaction{
			OrderID:     orderID,
			Amount:      order.TotalAmount,
			PaymentMode: paymentMode,
			CreatedAt:   time.Now().UTC(),
		}
		txnID, err := s.txnRepo.Create(ctx, &txn)
		if err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		txn.ID = txnID

		return s.auditor.Record(ctx, audit.Entry{
			Entity:   "order",
			EntityID: orderID,
			Action:   audit.ActionOrderDelivered,
			Changes: map[string]any{
				"amount":       txn.Amount.String(),
				"payment_mode": string(paymentMode),
			},
			ActorID: appctx.GetUserID(ctx),
			At:      txn.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order delivered",
		"order_id", orderID,
		"amount", txn.Amount.Float64(),
		"payment_mode", string(paymentMode),
	)
	return &txn, nil
}

package stock

import (
	"context"
	"fmt"
	"time"

	"paneerflow/internal/core/apperror"
	appctx "paneerflow/internal/core/context"
	"paneerflow/internal/core/tx"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/audit"
	"paneerflow/pkg/logger"
)

// Service provides business operations on the stock ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new stock service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Get returns the current ledger snapshot.
func (s *Service) Get(ctx context.Context) (Ledger, error) {
	return s.repo.Get(ctx)
}

// ReceiveBatch records a nightly stock receipt: the ledger quantity grows by
// the batch quantity, the purchase price is replaced, and an immutable batch
// entry snapshots the ledger around the receipt. All of it commits atomically.
func (s *Service) ReceiveBatch(ctx context.Context, quantity types.Quantity, purchasePrice types.Money, receivedAt *time.Time) (*Batch, error) {
	if !quantity.IsPositive() {
		return nil, apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
	}
	if purchasePrice.IsNegative() {
		return nil, apperror.NewValidation("purchase_price must not be negative").WithDetail("field", "purchase_price")
	}

	at := time.Now().UTC()
	if receivedAt != nil {
		at = receivedAt.UTC()
	}

	var batch Batch
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ledger, err := s.repo.GetForUpdate(ctx)
		if err != nil {
			return err
		}

		if err := s.repo.ApplyReceipt(ctx, quantity, purchasePrice); err != nil {
			return fmt.Errorf("apply receipt: %w", err)
		}

		batch = Batch{
			Quantity:      quantity,
			PurchasePrice: purchasePrice,
			PreviousStock: ledger.CurrentStock,
			UpdatedStock:  ledger.CurrentStock + quantity,
			ReceivedAt:    at,
		}
		batchID, err := s.repo.RecordBatch(ctx, &batch)
		if err != nil {
			return fmt.Errorf("record batch: %w", err)
		}
		batch.ID = batchID

		return s.auditor.Record(ctx, audit.Entry{
			Entity:   "batch",
			EntityID: batchID,
			Action:   audit.ActionBatchReceived,
			Changes: map[string]any{
				"quantity":       quantity.String(),
				"purchase_price": purchasePrice.String(),
				"previous_stock": batch.PreviousStock.String(),
				"updated_stock":  batch.UpdatedStock.String(),
			},
			ActorID: appctx.GetUserID(ctx),
			At:      at,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch received",
		"batch_id", batch.ID,
		"quantity", quantity.Float64(),
		"updated_stock", batch.UpdatedStock.Float64(),
	)
	return &batch, nil
}

// SetSellingPrice updates the prevailing selling price per kg. Orders already
// created keep their frozen price.
func (s *Service) SetSellingPrice(ctx context.Context, price types.Money) error {
	if price.IsNegative() {
		return apperror.NewValidation("selling_price must not be negative").WithDetail("field", "selling_price")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetSellingPrice(ctx, price); err != nil {
			return err
		}
		return s.auditor.Record(ctx, audit.Entry{
			Entity:  "stock",
			Action:  audit.ActionPriceChanged,
			Changes: map[string]any{"selling_price_per_kg": price.String()},
			ActorID: appctx.GetUserID(ctx),
			At:      time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "selling price updated", "price", price.Float64())
	return nil
}

// ListBatches returns recent receipt history, newest first.
func (s *Service) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.repo.ListBatches(ctx, limit)
}

package stock

import (
	"context"
	"testing"
	"time"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/audit"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory ledger and batch log.
type fakeRepo struct {
	ledger    Ledger
	batches   []Batch
	nextID    int64
	lastLimit int
}

func newFakeRepo(currentStock float64, sellingPrice, purchasePrice float64) *fakeRepo {
	return &fakeRepo{
		ledger: Ledger{
			ID:                 LedgerID,
			CurrentStock:       types.NewQuantityFromFloat64(currentStock),
			SellingPricePerKg:  types.NewMoneyFromFloat64(sellingPrice),
			PurchasePricePerKg: types.NewMoneyFromFloat64(purchasePrice),
		},
	}
}

func (f *fakeRepo) Get(context.Context) (Ledger, error)          { return f.ledger, nil }
func (f *fakeRepo) GetForUpdate(context.Context) (Ledger, error) { return f.ledger, nil }

func (f *fakeRepo) ApplyReceipt(_ context.Context, quantity types.Quantity, purchasePrice types.Money) error {
	f.ledger.CurrentStock += quantity
	f.ledger.PurchasePricePerKg = purchasePrice
	return nil
}

func (f *fakeRepo) ApplyDelivery(_ context.Context, quantity types.Quantity) (bool, error) {
	if f.ledger.CurrentStock < quantity {
		return false, nil
	}
	f.ledger.CurrentStock -= quantity
	return true, nil
}

func (f *fakeRepo) SetSellingPrice(_ context.Context, price types.Money) error {
	f.ledger.SellingPricePerKg = price
	return nil
}

func (f *fakeRepo) RecordBatch(_ context.Context, batch *Batch) (int64, error) {
	f.nextID++
	f.batches = append(f.batches, *batch)
	return f.nextID, nil
}

func (f *fakeRepo) ListBatches(_ context.Context, limit int) ([]Batch, error) {
	f.lastLimit = limit
	return f.batches, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, passthroughTx{}, audit.Nop{})
}

func TestReceiveBatch(t *testing.T) {
	repo := newFakeRepo(10, 320, 150)
	svc := newTestService(repo)
	ctx := context.Background()

	batch, err := svc.ReceiveBatch(ctx, types.NewQuantityFromFloat64(25), types.NewMoneyFromFloat64(180), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.ledger.CurrentStock.Float64(); got != 35 {
		t.Errorf("current stock: want 35, got %v", got)
	}
	if got := repo.ledger.PurchasePricePerKg.Float64(); got != 180 {
		t.Errorf("purchase price: want 180, got %v", got)
	}
	// Receipts never touch the selling price.
	if got := repo.ledger.SellingPricePerKg.Float64(); got != 320 {
		t.Errorf("selling price: want 320, got %v", got)
	}

	if batch.PreviousStock.Float64() != 10 || batch.UpdatedStock.Float64() != 35 {
		t.Errorf("batch snapshot: want 10 -> 35, got %v -> %v",
			batch.PreviousStock.Float64(), batch.UpdatedStock.Float64())
	}
	if batch.ID == 0 {
		t.Error("batch id not assigned")
	}
	if batch.ReceivedAt.IsZero() {
		t.Error("received_at not set")
	}
}

func TestReceiveBatchExplicitTimestamp(t *testing.T) {
	repo := newFakeRepo(0, 0, 0)
	svc := newTestService(repo)

	at := time.Date(2026, 8, 30, 22, 15, 0, 0, time.UTC)
	batch, err := svc.ReceiveBatch(context.Background(), types.NewQuantityFromFloat64(5), 0, &at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !batch.ReceivedAt.Equal(at) {
		t.Errorf("received_at: want %v, got %v", at, batch.ReceivedAt)
	}
}

func TestReceiveBatchValidation(t *testing.T) {
	repo := newFakeRepo(10, 320, 150)
	svc := newTestService(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		qty   float64
		price float64
	}{
		{"zero quantity", 0, 180},
		{"negative quantity", -5, 180},
		{"negative price", 25, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReceiveBatch(ctx, types.NewQuantityFromFloat64(tt.qty), types.NewMoneyFromFloat64(tt.price), nil)
			if !apperror.IsCode(err, apperror.CodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}

	// Rejected receipts leave no trace.
	if len(repo.batches) != 0 {
		t.Errorf("batches recorded: %d", len(repo.batches))
	}
	if got := repo.ledger.CurrentStock.Float64(); got != 10 {
		t.Errorf("ledger mutated: %v", got)
	}
}

func TestSetSellingPrice(t *testing.T) {
	repo := newFakeRepo(10, 320, 150)
	svc := newTestService(repo)

	if err := svc.SetSellingPrice(context.Background(), types.NewMoneyFromFloat64(340)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.ledger.SellingPricePerKg.Float64(); got != 340 {
		t.Errorf("selling price: want 340, got %v", got)
	}

	err := svc.SetSellingPrice(context.Background(), types.NewMoneyFromFloat64(-1))
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestListBatchesClampsLimit(t *testing.T) {
	repo := newFakeRepo(0, 0, 0)
	svc := newTestService(repo)
	ctx := context.Background()

	tests := []struct {
		limit int
		want  int
	}{
		{0, 50},
		{-3, 50},
		{10, 10},
		{1000, 500},
	}

	for _, tt := range tests {
		if _, err := svc.ListBatches(ctx, tt.limit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLimit != tt.want {
			t.Errorf("limit %d: want %d passed to repo, got %d", tt.limit, tt.want, repo.lastLimit)
		}
	}
}

package orders

import (
	"context"
	"testing"
	"time"

	"paneerflow/internal/core/apperror"
	"paneerflow/internal/core/types"
	"paneerflow/internal/domain/audit"
	"paneerflow/internal/domain/stock"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeStockRepo is an in-memory ledger.
type fakeStockRepo struct {
	ledger stock.Ledger
}

func newFakeStockRepo(currentStock, sellingPrice, purchasePrice float64) *fakeStockRepo {
	return &fakeStockRepo{
		ledger: stock.Ledger{
			ID:                 stock.LedgerID,
			CurrentStock:       types.NewQuantityFromFloat64(currentStock),
			SellingPricePerKg:  types.NewMoneyFromFloat64(sellingPrice),
			PurchasePricePerKg: types.NewMoneyFromFloat64(purchasePrice),
		},
	}
}

func (f *fakeStockRepo) Get(context.Context) (stock.Ledger, error)          { return f.ledger, nil }
func (f *fakeStockRepo) GetForUpdate(context.Context) (stock.Ledger, error) { return f.ledger, nil }

func (f *fakeStockRepo) ApplyReceipt(_ context.Context, quantity types.Quantity, purchasePrice types.Money) error {
	f.ledger.CurrentStock += quantity
	f.ledger.PurchasePricePerKg = purchasePrice
	return nil
}

func (f *fakeStockRepo) ApplyDelivery(_ context.Context, quantity types.Quantity) (bool, error) {
	if f.ledger.CurrentStock < quantity {
		return false, nil
	}
	f.ledger.CurrentStock -= quantity
	return true, nil
}

func (f *fakeStockRepo) SetSellingPrice(_ context.Context, price types.Money) error {
	f.ledger.SellingPricePerKg = price
	return nil
}

func (f *fakeStockRepo) RecordBatch(_ context.Context, batch *stock.Batch) (int64, error) {
	return 1, nil
}

func (f *fakeStockRepo) ListBatches(context.Context, int) ([]stock.Batch, error) { return nil, nil }

// fakeOrderRepo is an in-memory order book.
type fakeOrderRepo struct {
	orders map[int64]*Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *Order) (int64, error) {
	f.nextID++
	order.ID = f.nextID
	stored := *order
	f.orders[order.ID] = &stored
	return order.ID, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, apperror.NewNotFound("order", id)
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) List(_ context.Context, status *Status) ([]Order, error) {
	var result []Order
	for _, order := range f.orders {
		if status == nil || order.Status == *status {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) MarkDelivered(_ context.Context, id int64) (bool, error) {
	order, ok := f.orders[id]
	if !ok || order.Status != StatusPending {
		return false, nil
	}
	order.Status = StatusDelivered
	return true, nil
}

// fakeTxnRepo is an in-memory payment log.
type fakeTxnRepo struct {
	txns   []Transaction
	nextID int64
}

func (f *fakeTxnRepo) Create(_ context.Context, txn *Transaction) (int64, error) {
	f.nextID++
	txn.ID = f.nextID
	f.txns = append(f.txns, *txn)
	return txn.ID, nil
}

func (f *fakeTxnRepo) ListByOrder(_ context.Context, orderID int64) ([]Transaction, error) {
	var result []Transaction
	for _, txn := range f.txns {
		if txn.OrderID == orderID {
			result = append(result, txn)
		}
	}
	return result, nil
}

type fixture struct {
	svc       *Service
	orderRepo *fakeOrderRepo
	txnRepo   *fakeTxnRepo
	stockRepo *fakeStockRepo
}

func newFixture(currentStock, sellingPrice, purchasePrice float64) *fixture {
	orderRepo := newFakeOrderRepo()
	txnRepo := &fakeTxnRepo{}
	stockRepo := newFakeStockRepo(currentStock, sellingPrice, purchasePrice)
	return &fixture{
		svc:       NewService(orderRepo, txnRepo, stockRepo, passthroughTx{}, audit.Nop{}),
		orderRepo: orderRepo,
		txnRepo:   txnRepo,
		stockRepo: stockRepo,
	}
}

func validInput(qty float64) CreateInput {
	return CreateInput{
		CustomerName: "Sharma Dairy",
		Quantity:     types.NewQuantityFromFloat64(qty),
		DeliveryTime: time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC),
	}
}

func TestCreateFreezesLedgerPricing(t *testing.T) {
	fx := newFixture(50, 320, 180)
	ctx := context.Background()

	order, err := fx.svc.Create(ctx, validInput(2.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := order.SellingPrice.Float64(); got != 320 {
		t.Errorf("selling price: want ledger default 320, got %v", got)
	}
	if order.PurchasePrice == nil || order.PurchasePrice.Float64() != 180 {
		t.Errorf("purchase price not frozen from ledger: %v", order.PurchasePrice)
	}
	if got := order.TotalAmount.Float64(); got != 800 {
		t.Errorf("total amount: want 800, got %v", got)
	}
	if order.Status != StatusPending {
		t.Errorf("status: want Pending, got %s", order.Status)
	}

	// The frozen pricing must survive later ledger changes.
	fx.stockRepo.ledger.SellingPricePerKg = types.NewMoneyFromFloat64(999)
	stored, err := fx.svc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stored.TotalAmount.Float64(); got != 800 {
		t.Errorf("total amount drifted after price change: %v", got)
	}
}

func TestCreateExplicitPriceOverride(t *testing.T) {
	fx := newFixture(50, 320, 180)

	in := validInput(4)
	price := types.NewMoneyFromFloat64(300)
	in.SellingPrice = &price

	order, err := fx.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := order.TotalAmount.Float64(); got != 1200 {
		t.Errorf("total amount: want 1200, got %v", got)
	}
}

func TestCreateDoesNotCheckStock(t *testing.T) {
	fx := newFixture(1, 320, 180)

	// Ordering more than on hand is allowed; only delivery checks stock.
	if _, err := fx.svc.Create(context.Background(), validInput(100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	fx := newFixture(50, 320, 180)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing customer", func(in *CreateInput) { in.CustomerName = "" }},
		{"zero quantity", func(in *CreateInput) { in.Quantity = 0 }},
		{"missing delivery time", func(in *CreateInput) { in.DeliveryTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(2)
			tt.mutate(&in)
			_, err := fx.svc.Create(ctx, in)
			if !apperror.IsCode(err, apperror.CodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestDeliverSuccess(t *testing.T) {
	fx := newFixture(50, 320, 180)
	ctx := context.Background()

	order, err := fx.svc.Create(ctx, validInput(2.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txn, err := fx.svc.Deliver(ctx, order.ID, PaymentUPI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fx.stockRepo.ledger.CurrentStock.Float64(); got != 47.5 {
		t.Errorf("stock after delivery: want 47.5, got %v", got)
	}
	stored, _ := fx.svc.Get(ctx, order.ID)
	if stored.Status != StatusDelivered {
		t.Errorf("status: want Delivered, got %s", stored.Status)
	}
	if txn.Amount != order.TotalAmount {
		t.Errorf("transaction amount: want %v, got %v", order.TotalAmount, txn.Amount)
	}
	if txn.PaymentMode != PaymentUPI {
		t.Errorf("payment mode: want UPI, got %s", txn.PaymentMode)
	}
}

func TestDeliverUnknownOrder(t *testing.T) {
	fx := newFixture(50, 320, 180)

	_, err := fx.svc.Deliver(context.Background(), 42, PaymentCash)
	if !apperror.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestDeliverAlreadyDelivered(t *testing.T) {
	fx := newFixture(50, 320, 180)
	ctx := context.Background()

	order, _ := fx.svc.Create(ctx, validInput(2))
	if _, err := fx.svc.Deliver(ctx, order.ID, PaymentCash); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}

	stockAfterFirst := fx.stockRepo.ledger.CurrentStock

	_, err := fx.svc.Deliver(ctx, order.ID, PaymentCash)
	if !apperror.IsCode(err, apperror.CodeAlreadyDelivered) {
		t.Fatalf("want already-delivered error, got %v", err)
	}

	// Second attempt must not touch stock or the payment log.
	if fx.stockRepo.ledger.CurrentStock != stockAfterFirst {
		t.Error("stock mutated by rejected delivery")
	}
	if len(fx.txnRepo.txns) != 1 {
		t.Errorf("payment log: want 1 entry, got %d", len(fx.txnRepo.txns))
	}
}

func TestDeliverInsufficientStock(t *testing.T) {
	fx := newFixture(1, 320, 180)
	ctx := context.Background()

	order, _ := fx.svc.Create(ctx, validInput(5))

	_, err := fx.svc.Deliver(ctx, order.ID, PaymentCash)
	if !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("want insufficient-stock error, got %v", err)
	}

	// Nothing may change on rejection.
	if got := fx.stockRepo.ledger.CurrentStock.Float64(); got != 1 {
		t.Errorf("stock mutated: %v", got)
	}
	stored, _ := fx.svc.Get(ctx, order.ID)
	if stored.Status != StatusPending {
		t.Errorf("status: want Pending, got %s", stored.Status)
	}
	if len(fx.txnRepo.txns) != 0 {
		t.Errorf("payment log: want empty, got %d entries", len(fx.txnRepo.txns))
	}
}

func TestDeliverInvalidPaymentMode(t *testing.T) {
	fx := newFixture(50, 320, 180)
	ctx := context.Background()

	order, _ := fx.svc.Create(ctx, validInput(2))

	_, err := fx.svc.Deliver(ctx, order.ID, PaymentMode("Cheque"))
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	fx := newFixture(50, 320, 180)

	_, err := fx.svc.List(context.Background(), "Shipped")
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

// The nightly flow: a batch arrives, orders are taken against the new stock
// and delivered one by one until the ledger runs dry.
func TestOrderLifecycleAgainstLedger(t *testing.T) {
	stockRepo := newFakeStockRepo(0, 320, 0)
	stockSvc := stock.NewService(stockRepo, passthroughTx{}, audit.Nop{})

	orderRepo := newFakeOrderRepo()
	txnRepo := &fakeTxnRepo{}
	orderSvc := NewService(orderRepo, txnRepo, stockRepo, passthroughTx{}, audit.Nop{})

	ctx := context.Background()

	if _, err := stockSvc.ReceiveBatch(ctx, types.NewQuantityFromFloat64(5), types.NewMoneyFromFloat64(180), nil); err != nil {
		t.Fatalf("receive batch: %v", err)
	}

	first, err := orderSvc.Create(ctx, validInput(3))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := orderSvc.Create(ctx, validInput(3))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if _, err := orderSvc.Deliver(ctx, first.ID, PaymentCash); err != nil {
		t.Fatalf("deliver first: %v", err)
	}

	// Only 2 kg left; the second 3 kg order must be rejected intact.
	_, err = orderSvc.Deliver(ctx, second.ID, PaymentCash)
	if !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("want insufficient-stock error, got %v", err)
	}
	if got := stockRepo.ledger.CurrentStock.Float64(); got != 2 {
		t.Errorf("remaining stock: want 2, got %v", got)
	}
}

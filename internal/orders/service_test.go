package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubPricer struct {
	prices map[string]decimal.Decimal
}

func (s stubPricer) GetProduct(_ context.Context, id string) (*product.Info, error) {
	price, ok := s.prices[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &product.Info{ID: id, Name: "Product " + id, Price: price}, nil
}

type stubCartRepo struct {
	lines   []models.CartLine
	cleared bool
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cart.CartRepository { return s }
func (s *stubCartRepo) FindByID(context.Context, uuid.UUID) (*models.CartLine, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCartRepo) FindByProductAndSignature(context.Context, string, string) (*models.CartLine, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCartRepo) FindLegacyByProduct(context.Context, string) (*models.CartLine, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCartRepo) BackfillAttributes(context.Context, uuid.UUID, string) error { return nil }
func (s *stubCartRepo) Create(_ context.Context, line *models.CartLine) (*models.CartLine, error) {
	return line, nil
}
func (s *stubCartRepo) UpdateQuantity(context.Context, uuid.UUID, int) error { return nil }
func (s *stubCartRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (s *stubCartRepo) List(context.Context) ([]models.CartLine, error)      { return s.lines, nil }
func (s *stubCartRepo) Clear(context.Context) (int64, error) {
	removed := int64(len(s.lines))
	s.lines = nil
	s.cleared = true
	return removed, nil
}
func (s *stubCartRepo) Count(context.Context) (int64, error) { return int64(len(s.lines)), nil }

type stubOrderRepo struct {
	order      *models.Order
	orderCaps  Capabilities
	items      []models.OrderItem
	createErrs []error
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) OrderRepository { return s }

func (s *stubOrderRepo) CreateOrder(_ context.Context, order *models.Order, caps Capabilities) error {
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	s.order = order
	s.orderCaps = caps
	return nil
}

func (s *stubOrderRepo) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	s.items = append(s.items, items...)
	return nil
}

func cartLines() []models.CartLine {
	sig := `{"Options":"Default"}`
	return []models.CartLine{
		{ID: uuid.New(), ProductID: "apple-imac-2021", Attributes: &sig, Quantity: 2},
		{ID: uuid.New(), ProductID: "xbox-series-s", Attributes: &sig, Quantity: 1},
	}
}

func testPricer() stubPricer {
	return stubPricer{prices: map[string]decimal.Decimal{
		"apple-imac-2021": decimal.RequireFromString("1688.03"),
		"xbox-series-s":   decimal.RequireFromString("333.99"),
	}}
}

func fullCaps() Capabilities {
	return Capabilities{HasTotalAmount: true, HasStatus: true, HasOrderItems: true}
}

func newTestService(t *testing.T, repo OrderRepository, cartRepo cart.CartRepository, caps Capabilities) Service {
	t.Helper()
	svc, err := NewService(repo, cartRepo, stubTxRunner{}, testPricer(), caps, "Guest Customer")
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	t.Parallel()

	cartRepo := &stubCartRepo{}
	svc := newTestService(t, &stubOrderRepo{}, cartRepo, fullCaps())

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result for empty cart")
	}
	if result.Message != MessageEmptyCart {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if cartRepo.cleared {
		t.Fatal("empty cart must not be cleared")
	}
}

type countingTxRunner struct {
	calls int
}

func (c *countingTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	c.calls++
	return fn(nil)
}

func TestPlaceOrderEmptyCartSkipsTransaction(t *testing.T) {
	t.Parallel()

	runner := &countingTxRunner{}
	svc, err := NewService(&stubOrderRepo{}, &stubCartRepo{}, runner, testPricer(), fullCaps(), "Guest Customer")
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Message != MessageEmptyCart {
		t.Fatalf("unexpected result %+v", result)
	}
	if runner.calls != 0 {
		t.Fatalf("expected no transaction for an empty cart, got %d", runner.calls)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	t.Parallel()

	orderRepo := &stubOrderRepo{}
	cartRepo := &stubCartRepo{lines: cartLines()}
	svc := newTestService(t, orderRepo, cartRepo, fullCaps())

	name := "Ada Lovelace"
	result, err := svc.PlaceOrder(context.Background(), &name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Message != MessagePlaced {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.OrderID == nil {
		t.Fatal("expected order id")
	}

	// 2 × 1688.03 + 1 × 333.99
	want := decimal.RequireFromString("3710.05")
	if !result.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, result.TotalAmount)
	}
	if result.ItemsCount != 2 {
		t.Fatalf("expected 2 items, got %d", result.ItemsCount)
	}

	if orderRepo.order.CustomerName != "Ada Lovelace" {
		t.Fatalf("unexpected customer %q", orderRepo.order.CustomerName)
	}
	if orderRepo.order.Status != StatusPending {
		t.Fatalf("unexpected status %q", orderRepo.order.Status)
	}
	if len(orderRepo.items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(orderRepo.items))
	}
	if !orderRepo.items[0].Price.Equal(decimal.RequireFromString("1688.03")) {
		t.Fatalf("expected snapshot price, got %s", orderRepo.items[0].Price)
	}
	if !cartRepo.cleared {
		t.Fatal("expected cart to be cleared")
	}
}

func TestPlaceOrderDefaultsToGuest(t *testing.T) {
	t.Parallel()

	orderRepo := &stubOrderRepo{}
	svc := newTestService(t, orderRepo, &stubCartRepo{lines: cartLines()}, fullCaps())

	blank := "   "
	if _, err := svc.PlaceOrder(context.Background(), &blank); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderRepo.order.CustomerName != "Guest Customer" {
		t.Fatalf("expected guest label, got %q", orderRepo.order.CustomerName)
	}
}

func TestPlaceOrderPricesVanishedProductAtZero(t *testing.T) {
	t.Parallel()

	sig := `{"Options":"Default"}`
	orderRepo := &stubOrderRepo{}
	cartRepo := &stubCartRepo{lines: []models.CartLine{
		{ID: uuid.New(), ProductID: "discontinued", Attributes: &sig, Quantity: 3},
	}}
	svc := newTestService(t, orderRepo, cartRepo, fullCaps())

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !result.TotalAmount.IsZero() {
		t.Fatalf("expected zero total, got %s", result.TotalAmount)
	}
}

func TestPlaceOrderSkipsItemsWithoutTable(t *testing.T) {
	t.Parallel()

	orderRepo := &stubOrderRepo{}
	caps := Capabilities{HasTotalAmount: true, HasStatus: true, HasOrderItems: false}
	svc := newTestService(t, orderRepo, &stubCartRepo{lines: cartLines()}, caps)

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(orderRepo.items) != 0 {
		t.Fatalf("expected no order items, got %d", len(orderRepo.items))
	}
}

func TestPlaceOrderRetriesMinimalOnSchemaDrift(t *testing.T) {
	t.Parallel()

	driftErr := &pq.Error{Code: "42703"}
	orderRepo := &stubOrderRepo{createErrs: []error{driftErr}}
	cartRepo := &stubCartRepo{lines: cartLines()}
	svc := newTestService(t, orderRepo, cartRepo, fullCaps())

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success after degraded retry, got %+v", result)
	}
	if orderRepo.orderCaps != Minimal {
		t.Fatalf("expected minimal caps on retry, got %+v", orderRepo.orderCaps)
	}
}

func TestPlaceOrderReportsFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	orderRepo := &stubOrderRepo{createErrs: []error{boom}}
	svc := newTestService(t, orderRepo, &stubCartRepo{lines: cartLines()}, fullCaps())

	result, err := svc.PlaceOrder(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for logging")
	}
	if result == nil || result.Success {
		t.Fatalf("expected failure result, got %+v", result)
	}
	if result.Message != MessageFailed {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

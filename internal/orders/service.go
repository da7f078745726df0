package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
	"github.com/shopfrontdev/shopfront-backend/pkg/enums"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
)

// StatusPending is the initial status for freshly placed orders.
const StatusPending = string(enums.OrderStatusPending)

// Service turns the current cart into an order.
type Service interface {
	PlaceOrder(ctx context.Context, customerName *string) (*Result, error)
}

type service struct {
	repo      OrderRepository
	cart      cart.CartRepository
	tx        txRunner
	pricer    productPricer
	caps      Capabilities
	guestName string
}

// NewService builds an order workflow with the required dependencies. caps
// comes from the startup schema probe; guestName labels orders placed
// without a customer name.
func NewService(repo OrderRepository, cartRepo cart.CartRepository, tx txRunner, pricer productPricer, caps Capabilities, guestName string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("product pricer required")
	}
	if guestName == "" {
		guestName = "Guest Customer"
	}
	return &service{
		repo:      repo,
		cart:      cartRepo,
		tx:        tx,
		pricer:    pricer,
		caps:      caps,
		guestName: guestName,
	}, nil
}

// PlaceOrder snapshots the cart at live prices, writes the order (and line
// snapshots where the schema allows), and clears the cart, all in one
// transaction. Business failures come back in the Result with Success
// false; the accompanying error, when non-nil, is for logging only.
func (s *service) PlaceOrder(ctx context.Context, customerName *string) (*Result, error) {
	name := s.guestName
	if customerName != nil {
		if trimmed := strings.TrimSpace(*customerName); trimmed != "" {
			name = trimmed
		}
	}

	// An empty cart fails fast without opening a transaction. The
	// in-transaction check below covers the race with a concurrent clear.
	count, err := s.cart.Count(ctx)
	if err != nil {
		return &Result{Success: false, Message: MessageFailed},
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}
	if count == 0 {
		return &Result{Success: false, Message: MessageEmptyCart}, nil
	}

	result, err := s.attempt(ctx, name, s.caps)
	if err != nil && s.caps != Minimal && isSchemaDrift(err) {
		// The schema shrank after the startup probe. Retry once writing
		// only the columns every deployment has.
		result, err = s.attempt(ctx, name, Minimal)
	}
	if err != nil {
		return &Result{Success: false, Message: MessageFailed},
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}
	return result, nil
}

func (s *service) attempt(ctx context.Context, name string, caps Capabilities) (*Result, error) {
	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cart.WithTx(tx)
		orderRepo := s.repo.WithTx(tx)

		lines, err := cartRepo.List(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			result = &Result{Success: false, Message: MessageEmptyCart}
			return nil
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			price, err := s.priceFor(ctx, line.ProductID)
			if err != nil {
				return err
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}

		order := &models.Order{
			ID:           uuid.New(),
			CustomerName: name,
			TotalAmount:  total,
			Status:       StatusPending,
		}
		if err := orderRepo.CreateOrder(ctx, order, caps); err != nil {
			return err
		}

		if caps.HasOrderItems {
			for i := range items {
				items[i].OrderID = order.ID
			}
			if err := orderRepo.CreateOrderItems(ctx, items); err != nil {
				return err
			}
		}

		if _, err := cartRepo.Clear(ctx); err != nil {
			return err
		}

		result = &Result{
			Success:     true,
			Message:     MessagePlaced,
			OrderID:     &order.ID,
			TotalAmount: total,
			ItemsCount:  len(items),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// priceFor resolves the commit-time unit price. Lines whose product has
// vanished from the catalog are priced at zero rather than blocking the
// whole order.
func (s *service) priceFor(ctx context.Context, productID string) (decimal.Decimal, error) {
	info, err := s.pricer.GetProduct(ctx, productID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return info.Price, nil
}

func isSchemaDrift(err error) bool {
	return db.IsUndefinedColumn(err) || db.IsUndefinedTable(err)
}

package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/internal/attrs"
	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
)

// Service exposes cart operations. The cart is a single shared collection;
// there is no per-customer partitioning at this layer.
type Service interface {
	AddToCart(ctx context.Context, input AddInput) (*Line, error)
	ListCart(ctx context.Context) ([]Line, error)
	UpdateQuantity(ctx context.Context, lineID uuid.UUID, delta int) (*Line, error)
	Remove(ctx context.Context, lineID uuid.UUID) (*Line, error)
	Clear(ctx context.Context) (int64, error)
}

// AddInput captures the payload for adding a product to the cart.
type AddInput struct {
	ProductID  string
	Quantity   int
	Attributes *string
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// AddToCart merges the quantity into an existing line with the same product
// and attribute signature, or creates a new line. The find-then-write pair
// runs in one transaction so concurrent adds cannot split a line.
func (s *service) AddToCart(ctx context.Context, input AddInput) (*Line, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	info, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	signature := attrs.Normalize(input.Attributes, info.Attributes)

	var row *models.CartLine
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByProductAndSignature(ctx, productID, signature)
		switch {
		case err == nil:
			if err := repo.UpdateQuantity(ctx, existing.ID, existing.Quantity+input.Quantity); err != nil {
				return err
			}
			existing.Quantity += input.Quantity
			row = existing
			return nil
		case db.IsNotFound(err):
			// A row written before the attributes column existed carries
			// NULL; it represents the catalog-default selection, so an add
			// with that selection merges into it and stamps the signature.
			if signature == attrs.Normalize(nil, info.Attributes) {
				legacy, lerr := repo.FindLegacyByProduct(ctx, productID)
				switch {
				case lerr == nil:
					if err := repo.BackfillAttributes(ctx, legacy.ID, signature); err != nil {
						return err
					}
					if err := repo.UpdateQuantity(ctx, legacy.ID, legacy.Quantity+input.Quantity); err != nil {
						return err
					}
					legacy.Attributes = &signature
					legacy.Quantity += input.Quantity
					row = legacy
					return nil
				case !db.IsNotFound(lerr):
					return lerr
				}
			}
			created, err := repo.Create(ctx, &models.CartLine{
				ProductID:  productID,
				Attributes: &signature,
				Quantity:   input.Quantity,
			})
			if err != nil {
				return err
			}
			row = created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to cart")
	}

	line := newLine(row, info)
	return &line, nil
}

// ListCart returns all lines newest first, each enriched with its catalog
// read-model.
func (s *service) ListCart(ctx context.Context) ([]Line, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	lines := make([]Line, 0, len(rows))
	for i := range rows {
		line, err := s.enrich(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// UpdateQuantity applies a signed delta to the line. When the result drops
// to zero or below the line is deleted and nil is returned.
func (s *service) UpdateQuantity(ctx context.Context, lineID uuid.UUID, delta int) (*Line, error) {
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line id is required")
	}

	var (
		row     *models.CartLine
		deleted bool
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		line, err := repo.FindByID(ctx, lineID)
		if err != nil {
			return err
		}

		next := line.Quantity + delta
		if next <= 0 {
			deleted = true
			return repo.Delete(ctx, line.ID)
		}
		if err := repo.UpdateQuantity(ctx, line.ID, next); err != nil {
			return err
		}
		line.Quantity = next
		row = line
		return nil
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if deleted {
		return nil, nil
	}

	line, err := s.enrich(ctx, row)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Remove deletes the line and returns a snapshot of it with quantity zero,
// so callers can confirm what was removed.
func (s *service) Remove(ctx context.Context, lineID uuid.UUID) (*Line, error) {
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line id is required")
	}

	var row *models.CartLine
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		line, err := repo.FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, line.ID); err != nil {
			return err
		}
		row = line
		return nil
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}

	line, err := s.enrich(ctx, row)
	if err != nil {
		return nil, err
	}
	line.Quantity = 0
	return &line, nil
}

// Clear empties the cart and reports how many lines were removed.
func (s *service) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return removed, nil
}

func (s *service) enrich(ctx context.Context, row *models.CartLine) (Line, error) {
	info, err := s.products.GetProduct(ctx, row.ProductID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return newLine(row, nil), nil
		}
		return Line{}, err
	}
	return newLine(row, info), nil
}

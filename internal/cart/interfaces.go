package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartLine, error)
	FindByProductAndSignature(ctx context.Context, productID, signature string) (*models.CartLine, error)
	FindLegacyByProduct(ctx context.Context, productID string) (*models.CartLine, error)
	Create(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	BackfillAttributes(ctx context.Context, id uuid.UUID, signature string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.CartLine, error)
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetProduct(ctx context.Context, id string) (*product.Info, error)
}

package orders

import (
	"context"

	"gorm.io/gorm"

	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// OrderRepository defines the persistence surface required by the workflow.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	CreateOrder(ctx context.Context, order *models.Order, caps Capabilities) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// productPricer resolves live catalog prices at commit time. The wired
// implementation bypasses the catalog cache so totals never reflect a stale
// entry.
type productPricer interface {
	GetProduct(ctx context.Context, id string) (*product.Info, error)
}

package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// Repository persists orders and their line snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateOrder inserts the order, writing only the columns the schema has.
// IDs are generated application-side, so the degraded insert never needs
// the database to return anything.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order, caps Capabilities) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	columns := []string{"id", "customer_name", "created_at"}
	if caps.HasTotalAmount {
		columns = append(columns, "total_amount")
	}
	if caps.HasStatus {
		columns = append(columns, "status")
	}

	return r.db.WithContext(ctx).
		Select(columns).
		Create(order).Error
}

// CreateOrderItems inserts the line snapshots for an order.
func (r *Repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

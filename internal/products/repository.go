package product

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// Repository exposes read-only catalog access. Catalog writes belong to the
// import pipeline and are intentionally absent here.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a product with its price, gallery, and attribute catalog.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Preload("Gallery", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Attributes.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Attributes").
		First(&row, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the full catalog with preloaded relations, ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Preload("Gallery", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Attributes.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Attributes").
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListAttributes returns every distinct attribute with its values in catalog order.
func (r *Repository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	var rows []models.Attribute
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

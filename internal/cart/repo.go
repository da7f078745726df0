package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// Repository exposes persistence operations for cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a single cart line.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// FindByProductAndSignature returns the line matching the merge key, if any.
func (r *Repository) FindByProductAndSignature(ctx context.Context, productID, signature string) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND attributes = ?", productID, signature).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// FindLegacyByProduct returns the product's row written before the
// attributes column existed, if any.
func (r *Repository) FindLegacyByProduct(ctx context.Context, productID string) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND attributes IS NULL", productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Create inserts a new cart line.
func (r *Repository) Create(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQuantity sets the absolute quantity on a line.
func (r *Repository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// BackfillAttributes stamps a signature onto a line that predates the
// attributes column.
func (r *Repository) BackfillAttributes(ctx context.Context, id uuid.UUID, signature string) error {
	return r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", id).
		Update("attributes", signature).Error
}

// Delete removes a cart line by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartLine{}).Error
}

// List returns all cart lines, newest first.
func (r *Repository) List(ctx context.Context) ([]models.CartLine, error) {
	var rows []models.CartLine
	err := r.db.WithContext(ctx).
		Order("added_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// Clear removes every cart line and reports how many were deleted.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}

// Count returns the number of cart lines.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CartLine{}).Count(&count).Error
	return count, err
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one row of the single shared cart. Line identity is the
// (product_id, attributes) pair; quantity is always positive while the
// row exists.
type CartLine struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  string    `gorm:"column:product_id;not null;index"`
	Attributes *string   `gorm:"column:attributes"`
	Quantity   int       `gorm:"column:quantity;not null"`
	AddedAt    time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (CartLine) TableName() string { return "cart" }

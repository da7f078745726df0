package models

import "github.com/shopspring/decimal"

// Price is the canonical amount for a product. One row per product in
// practice; the first row wins when more exist.
type Price struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID string          `gorm:"column:product_id;not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency  string          `gorm:"column:currency;default:'USD'"`
}

func (Price) TableName() string { return "prices" }

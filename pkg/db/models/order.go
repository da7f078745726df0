package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed order. TotalAmount and Status only exist on schemas
// migrated past the order-extension migration; minimal deployments carry
// just the customer label and timestamp.
type Order struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName string          `gorm:"column:customer_name;not null"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	Status       string          `gorm:"column:status"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string { return "orders" }

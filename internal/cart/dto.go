package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfrontdev/shopfront-backend/internal/attrs"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// UnknownProductName labels cart lines whose catalog row has disappeared.
const UnknownProductName = "Unknown Product"

// Line is a cart row enriched with its catalog read-model. Lines whose
// product no longer exists carry a placeholder read-model instead of an
// error so the cart stays renderable.
type Line struct {
	ID         uuid.UUID
	Product    product.Info
	Attributes string
	Quantity   int
	AddedAt    time.Time
}

func newLine(row *models.CartLine, info *product.Info) Line {
	line := Line{
		ID:       row.ID,
		Quantity: row.Quantity,
		AddedAt:  row.AddedAt,
	}
	if row.Attributes != nil {
		line.Attributes = *row.Attributes
	}
	if info != nil {
		line.Product = *info
	} else {
		line.Product = product.Info{
			ID:    row.ProductID,
			Name:  UnknownProductName,
			Price: decimal.Zero,
		}
	}
	if line.Attributes == "" {
		// Rows written before the attributes column existed carry NULL;
		// they list with the signature they would be stored with today.
		line.Attributes = attrs.Normalize(nil, line.Product.Attributes)
	}
	return line
}

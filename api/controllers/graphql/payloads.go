package graphql

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	"github.com/shopfrontdev/shopfront-backend/internal/orders"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
)

// ProductPayload is the catalog shape the storefront renders.
type ProductPayload struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Brand      string              `json:"brand,omitempty"`
	Price      decimal.Decimal     `json:"price"`
	Image      string              `json:"image"`
	InStock    bool                `json:"in_stock"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

func newProductPayload(info *product.Info) ProductPayload {
	return ProductPayload{
		ID:         info.ID,
		Name:       info.Name,
		Brand:      info.Brand,
		Price:      info.Price,
		Image:      info.ImageURL,
		InStock:    info.InStock,
		Attributes: info.Attributes,
	}
}

// CartLinePayload is one cart row: the line id, the product summary, the
// canonical attribute selection, and the quantity.
type CartLinePayload struct {
	ID         string          `json:"id"`
	Product    ProductPayload  `json:"product"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
	Quantity   int             `json:"quantity"`
}

func newCartLinePayload(line *cart.Line) CartLinePayload {
	payload := CartLinePayload{
		ID:       line.ID.String(),
		Product:  newProductPayload(&line.Product),
		Quantity: line.Quantity,
	}
	// Cart rows carry the selection, not the full catalog.
	payload.Product.Attributes = nil
	if line.Attributes != "" {
		payload.Attributes = json.RawMessage(line.Attributes)
	}
	return payload
}

func newCartPayload(lines []cart.Line) []CartLinePayload {
	payloads := make([]CartLinePayload, 0, len(lines))
	for i := range lines {
		payloads = append(payloads, newCartLinePayload(&lines[i]))
	}
	return payloads
}

// OrderPayload reports the outcome of placeOrder. The order fields are only
// present on success.
type OrderPayload struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	OrderID     *uuid.UUID       `json:"order_id,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	ItemsCount  *int             `json:"items_count,omitempty"`
}

func newOrderPayload(result *orders.Result) OrderPayload {
	payload := OrderPayload{
		Success: result.Success,
		Message: result.Message,
	}
	if result.Success {
		payload.OrderID = result.OrderID
		total := result.TotalAmount
		payload.TotalAmount = &total
		count := result.ItemsCount
		payload.ItemsCount = &count
	}
	return payload
}

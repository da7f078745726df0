package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Messages returned to the storefront verbatim.
const (
	MessagePlaced    = "Order placed successfully!"
	MessageEmptyCart = "Cart is empty. Cannot place order."
	MessageFailed    = "Failed to place order."
)

// Result is the outcome of a place-order attempt. Expected business
// failures (empty cart, storage trouble) surface here with Success false
// rather than as transport-level errors.
type Result struct {
	Success     bool
	Message     string
	OrderID     *uuid.UUID
	TotalAmount decimal.Decimal
	ItemsCount  int
}

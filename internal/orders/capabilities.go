package orders

import (
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
)

// Capabilities records which optional order schema pieces the connected
// database actually has. Minimal deployments stop at the base orders table;
// fully migrated ones add total_amount, status, and order_items.
type Capabilities struct {
	HasTotalAmount bool
	HasStatus      bool
	HasOrderItems  bool
}

// Full reports whether every optional schema piece is present.
func (c Capabilities) Full() bool {
	return c.HasTotalAmount && c.HasStatus && c.HasOrderItems
}

// Minimal is the floor every deployment supports.
var Minimal = Capabilities{}

// DetectCapabilities probes the schema once at startup. Results are held for
// the process lifetime; the order repository degrades again at runtime if
// the schema shrinks underneath a running instance.
func DetectCapabilities(conn *gorm.DB) Capabilities {
	migrator := conn.Migrator()
	order := &models.Order{}
	return Capabilities{
		HasTotalAmount: migrator.HasColumn(order, "total_amount"),
		HasStatus:      migrator.HasColumn(order, "status"),
		HasOrderItems:  migrator.HasTable(&models.OrderItem{}),
	}
}

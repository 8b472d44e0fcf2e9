// Package warehouse provides the Warehouse catalog.
// Warehouses are the physical locations stock quantities are tracked against.
package warehouse

import (
	"context"

	"gestock/internal/core/entity"
	"gestock/internal/core/id"
)

// Warehouse represents a storage location belonging to one store.
type Warehouse struct {
	entity.Catalog

	// StoreID is the owning store; a warehouse never moves between stores
	StoreID id.ID `db:"store_id" json:"storeId"`

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewWarehouse creates an active Warehouse for a store.
func NewWarehouse(storeID id.ID, name string) *Warehouse {
	return &Warehouse{
		Catalog: entity.NewCatalog(name),
		StoreID: storeID,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	return w.Catalog.Validate(ctx)
}

// CanHoldStock reports whether documents may move stock through this warehouse.
func (w *Warehouse) CanHoldStock() bool {
	return w.IsActive
}

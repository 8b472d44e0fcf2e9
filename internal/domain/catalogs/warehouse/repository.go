package warehouse

import (
	"context"

	"gestock/internal/core/id"
)

// Filter narrows warehouse listings.
type Filter struct {
	StoreID    *id.ID
	ActiveOnly bool
}

// Repository defines persistence for the Warehouse catalog.
type Repository interface {
	Create(ctx context.Context, w *Warehouse) error
	Update(ctx context.Context, w *Warehouse) error
	GetByID(ctx context.Context, warehouseID id.ID) (*Warehouse, error)
	GetByName(ctx context.Context, storeID id.ID, name string) (*Warehouse, error)
	List(ctx context.Context, f Filter) ([]Warehouse, error)
}

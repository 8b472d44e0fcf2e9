package supplier

import (
	"context"

	"gestock/internal/core/id"
)

// Filter narrows supplier listings.
type Filter struct {
	StoreID    *id.ID
	ActiveOnly bool
	Search     string
}

// Repository defines persistence for the Supplier catalog.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	GetByName(ctx context.Context, storeID id.ID, name string) (*Supplier, error)
	List(ctx context.Context, f Filter) ([]Supplier, error)
}

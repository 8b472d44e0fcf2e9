package product

import (
	"context"

	"gestock/internal/core/id"
)

// Filter narrows product listings.
type Filter struct {
	StoreID    *id.ID
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

// Repository defines persistence for the Product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetByReference(ctx context.Context, storeID id.ID, reference string) (*Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
}

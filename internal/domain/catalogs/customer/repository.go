package customer

import (
	"context"

	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Filter narrows customer listings.
type Filter struct {
	StoreID    *id.ID
	ActiveOnly bool
	// WithDebt keeps only customers owing money
	WithDebt bool
	Search   string
}

// Repository defines persistence for the Customer catalog.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// GetByIDForUpdate locks the customer row for the current transaction.
	// Debt mutations must go through this read.
	GetByIDForUpdate(ctx context.Context, customerID id.ID) (*Customer, error)

	// SetDebt persists a new debt value for a row locked by GetByIDForUpdate.
	SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error

	List(ctx context.Context, f Filter) ([]Customer, error)
}

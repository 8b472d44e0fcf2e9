package account

import (
	"context"

	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Filter narrows account listings.
type Filter struct {
	StoreID    *id.ID
	ActiveOnly bool
	Type       *Type
}

// Repository defines persistence for the Account catalog.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, accountID id.ID) (*Account, error)
	GetByName(ctx context.Context, storeID id.ID, name string) (*Account, error)

	// GetByIDForUpdate locks the account row for the current transaction.
	// Balance mutations must go through this read.
	GetByIDForUpdate(ctx context.Context, accountID id.ID) (*Account, error)

	// SetBalance persists a new balance for a row locked by GetByIDForUpdate.
	SetBalance(ctx context.Context, accountID id.ID, balance types.Money) error

	// FindDefault returns the store's default payment account:
	// the first active cash account, else the first active bank account,
	// else a not-found error.
	FindDefault(ctx context.Context, storeID id.ID) (*Account, error)

	List(ctx context.Context, f Filter) ([]Account, error)
}

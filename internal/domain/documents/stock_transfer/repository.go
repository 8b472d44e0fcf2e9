package stock_transfer

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Filter narrows transfer listings.
type Filter struct {
	StoreID         *id.ID
	FromWarehouseID *id.ID
	ToWarehouseID   *id.ID
	Status          *Status
	FromDate        *time.Time
	ToDate          *time.Time
	Limit           int
	Offset          int
}

// Repository defines persistence for stock transfers.
type Repository interface {
	// Create inserts the header and all items.
	Create(ctx context.Context, t *StockTransfer) error

	// GetByID loads the header with its items.
	GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error)

	// GetByIDForUpdate loads the header with its items and locks the
	// header row for the current transaction. Status changes must go
	// through this read.
	GetByIDForUpdate(ctx context.Context, transferID id.ID) (*StockTransfer, error)

	// AddItem inserts one item for a pending transfer.
	AddItem(ctx context.Context, t *StockTransfer, item *Item) error

	// UpdateStatus persists the status of a row locked by GetByIDForUpdate.
	UpdateStatus(ctx context.Context, t *StockTransfer) error

	List(ctx context.Context, f Filter) ([]StockTransfer, error)
}

package stock_entry

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Filter narrows entry listings.
type Filter struct {
	StoreID     *id.ID
	WarehouseID *id.ID
	SupplierID  *id.ID
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

// Repository defines persistence for stock entries.
type Repository interface {
	// Create inserts the header and all items.
	Create(ctx context.Context, e *StockEntry) error

	// GetByID loads the header with its items.
	GetByID(ctx context.Context, entryID id.ID) (*StockEntry, error)

	// GetByIDForUpdate locks the header row for the current transaction.
	GetByIDForUpdate(ctx context.Context, entryID id.ID) (*StockEntry, error)

	// AddItem inserts one item and persists the recalculated header total.
	AddItem(ctx context.Context, e *StockEntry, item *Item) error

	List(ctx context.Context, f Filter) ([]StockEntry, error)
}

package stock_exit

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Filter narrows exit listings.
type Filter struct {
	StoreID       *id.ID
	WarehouseID   *id.ID
	CustomerID    *id.ID
	PaymentStatus *PaymentStatus
	FromDate      *time.Time
	ToDate        *time.Time
	Limit         int
	Offset        int
}

// Repository defines persistence for stock exits.
type Repository interface {
	// Create inserts the header and all items.
	Create(ctx context.Context, e *StockExit) error

	// GetByID loads the header with its items.
	GetByID(ctx context.Context, exitID id.ID) (*StockExit, error)

	// GetByIDForUpdate loads the header with its items and locks the
	// header row for the current transaction.
	GetByIDForUpdate(ctx context.Context, exitID id.ID) (*StockExit, error)

	// AddItem inserts one item and persists the recalculated header
	// totals and payment fields.
	AddItem(ctx context.Context, e *StockExit, item *Item) error

	// UpdatePayment persists the paid, remaining and status fields of a
	// row locked by GetByIDForUpdate.
	UpdatePayment(ctx context.Context, e *StockExit) error

	List(ctx context.Context, f Filter) ([]StockExit, error)

	// ListUnpaidByCustomer returns the customer's exits that still carry
	// a remaining amount, oldest first.
	ListUnpaidByCustomer(ctx context.Context, customerID id.ID) ([]StockExit, error)
}

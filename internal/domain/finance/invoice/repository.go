package invoice

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Filter narrows invoice listings.
type Filter struct {
	StoreID    *id.ID
	CustomerID *id.ID
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// Repository defines persistence for invoices. Invoices are immutable:
// there is no update or delete.
type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetByStockExit(ctx context.Context, stockExitID id.ID) (*Invoice, error)
	List(ctx context.Context, f Filter) ([]Invoice, error)
}

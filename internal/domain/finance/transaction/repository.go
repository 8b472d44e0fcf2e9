package transaction

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Filter narrows ledger queries.
type Filter struct {
	StoreID *id.ID
	Type    *Type

	// AccountID matches either side of the line
	AccountID  *id.ID
	CustomerID *id.ID

	FromDate *time.Time
	ToDate   *time.Time

	Limit  int
	Offset int
}

// Repository defines persistence for the transaction ledger.
// The ledger is append-only: there is no update or delete.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, transactionID id.ID) (*Transaction, error)
	List(ctx context.Context, f Filter) ([]Transaction, error)

	// ExistsForSource reports whether a line of the given type was already
	// spawned by the source document. Guards once-per-document effects.
	ExistsForSource(ctx context.Context, sourceDocumentID id.ID, txType Type) (bool, error)
}

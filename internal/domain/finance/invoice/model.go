// Package invoice provides the sale invoice snapshot.
// One invoice is created per stock exit, inside the exit's transaction,
// and is immutable afterwards.
package invoice

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Invoice captures the billing snapshot of one stock exit.
// Numbers follow FAC-STORECODE-00001 with a per-store counter.
type Invoice struct {
	entity.Document

	// StockExitID is the one-to-one source exit
	StockExitID id.ID `db:"stock_exit_id" json:"stockExitId"`

	// CustomerID mirrors the exit's customer at creation time.
	// CustomerName carries the free-form name of a walk-in buyer.
	CustomerID   *id.ID  `db:"customer_id" json:"customerId,omitempty"`
	CustomerName *string `db:"customer_name" json:"customerName,omitempty"`

	// TotalAmount mirrors the exit total at creation time
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// New creates an Invoice snapshotting an exit.
func New(storeID, createdBy, stockExitID id.ID, customerID *id.ID, customerName *string, total types.Money) *Invoice {
	return &Invoice{
		Document:     entity.NewDocument(storeID, createdBy),
		StockExitID:  stockExitID,
		CustomerID:   customerID,
		CustomerName: customerName,
		TotalAmount:  types.RoundMoney(total),
	}
}

// Validate implements entity.Validatable interface.
func (i *Invoice) Validate(ctx context.Context) error {
	if err := i.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(i.StockExitID) {
		return apperror.NewValidation("stock exit is required").
			WithDetail("field", "stock_exit_id")
	}
	if i.TotalAmount.IsNegative() {
		return apperror.NewValidation("total cannot be negative").
			WithDetail("field", "total_amount")
	}
	return nil
}

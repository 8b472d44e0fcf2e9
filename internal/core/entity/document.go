package entity

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
)

// Document is the base type for dated, numbered business documents:
// stock entries, stock exits, transfers, invoices.
type Document struct {
	BaseEntity

	// Number is assigned once from the store's sequence and never changes
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// StoreID is the owning store
	StoreID id.ID `db:"store_id" json:"storeId"`

	// Notes is free-form commentary
	Notes *string `db:"notes" json:"notes,omitempty"`

	// CreatedBy records the user who created the document
	CreatedBy id.ID `db:"created_by" json:"createdBy"`
}

// NewDocument creates a Document owned by storeID, dated now.
// The number is assigned later, inside the creating transaction.
func NewDocument(storeID, createdBy id.ID) Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       time.Now().UTC(),
		StoreID:    storeID,
		CreatedBy:  createdBy,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.StoreID) {
		return apperror.NewValidation("store is required").
			WithDetail("field", "store_id")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Package supplier provides the Supplier catalog.
// Suppliers are referenced by stock entries for traceability; the system
// does not track supplier balances.
package supplier

import (
	"context"
	"regexp"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a goods supplier of one store.
type Supplier struct {
	entity.Catalog

	// StoreID is the owning store
	StoreID id.ID `db:"store_id" json:"storeId"`

	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`
}

// NewSupplier creates an active Supplier for a store.
func NewSupplier(storeID id.ID, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(name),
		StoreID: storeID,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Email != nil && *s.Email != "" && !emailPattern.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email").
			WithDetail("value", *s.Email)
	}

	return nil
}

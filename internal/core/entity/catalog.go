package entity

import (
	"context"

	"gestock/internal/core/apperror"
)

// Catalog is the base type for reference data: products, warehouses,
// customers, suppliers, accounts.
type Catalog struct {
	BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// IsActive marks the record usable in new documents
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewCatalog creates a new active Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
		IsActive:   true,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

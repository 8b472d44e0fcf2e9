// Package product provides the Product catalog.
package product

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Product represents a sellable good of one store.
type Product struct {
	entity.Catalog

	// StoreID is the owning store
	StoreID id.ID `db:"store_id" json:"storeId"`

	// Reference is the store-unique SKU
	Reference string `db:"reference" json:"reference"`

	Description *string `db:"description" json:"description,omitempty"`

	// Unit is the unit of measure label (piece, kg, box)
	Unit string `db:"unit" json:"unit"`

	// PurchasePrice is the default cost on stock entries
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// SalePrice is the default price on stock exits
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// MinStockAlert is the low-stock threshold in whole units
	MinStockAlert int64 `db:"min_stock_alert" json:"minStockAlert"`
}

// NewProduct creates an active Product for a store.
func NewProduct(storeID id.ID, reference, name string) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(name),
		StoreID:       storeID,
		Reference:     reference,
		Unit:          "piece",
		PurchasePrice: types.Zero(),
		SalePrice:     types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Reference == "" {
		return apperror.NewValidation("reference is required").
			WithDetail("field", "reference")
	}
	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchase_price")
	}
	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "sale_price")
	}
	if p.MinStockAlert < 0 {
		return apperror.NewValidation("min stock alert cannot be negative").
			WithDetail("field", "min_stock_alert")
	}

	return nil
}

// IsLowStock reports whether quantity has fallen to the alert threshold.
func (p *Product) IsLowStock(quantity int64) bool {
	return quantity <= p.MinStockAlert
}

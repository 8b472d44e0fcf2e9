package dto

import (
	"gestock/internal/core/types"
	"gestock/internal/domain/catalogs/product"
)

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	StoreID       string       `json:"storeId"`
	Reference     string       `json:"reference" binding:"required"`
	Name          string       `json:"name" binding:"required"`
	Description   *string      `json:"description"`
	Unit          string       `json:"unit"`
	PurchasePrice *types.Money `json:"purchasePrice"`
	SalePrice     *types.Money `json:"salePrice"`
	MinStockAlert int64        `json:"minStockAlert"`
}

// ToEntity converts the request into a new Product.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return nil, err
	}
	p := product.NewProduct(storeID, r.Reference, r.Name)
	p.Description = r.Description
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	if r.PurchasePrice != nil {
		p.PurchasePrice = types.RoundMoney(*r.PurchasePrice)
	}
	if r.SalePrice != nil {
		p.SalePrice = types.RoundMoney(*r.SalePrice)
	}
	p.MinStockAlert = r.MinStockAlert
	return p, nil
}

// UpdateProductRequest updates a product. Reference is immutable.
type UpdateProductRequest struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	Unit          *string      `json:"unit"`
	PurchasePrice *types.Money `json:"purchasePrice"`
	SalePrice     *types.Money `json:"salePrice"`
	MinStockAlert *int64       `json:"minStockAlert"`
	IsActive      *bool        `json:"isActive"`
	Version       int          `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Product.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.PurchasePrice != nil {
		p.PurchasePrice = types.RoundMoney(*r.PurchasePrice)
	}
	if r.SalePrice != nil {
		p.SalePrice = types.RoundMoney(*r.SalePrice)
	}
	if r.MinStockAlert != nil {
		p.MinStockAlert = *r.MinStockAlert
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Version = r.Version
}

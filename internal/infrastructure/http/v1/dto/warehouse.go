package dto

import (
	"gestock/internal/domain/catalogs/warehouse"
)

// CreateWarehouseRequest creates a warehouse. StoreID is required for
// global users and must be empty or match for store-bound users.
type CreateWarehouseRequest struct {
	StoreID string  `json:"storeId"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

// ToEntity converts the request into a new Warehouse.
func (r *CreateWarehouseRequest) ToEntity() (*warehouse.Warehouse, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return nil, err
	}
	w := warehouse.NewWarehouse(storeID, r.Name)
	w.Address = r.Address
	return w, nil
}

// UpdateWarehouseRequest updates a warehouse.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Warehouse.
func (r *UpdateWarehouseRequest) ApplyTo(w *warehouse.Warehouse) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Address != nil {
		w.Address = r.Address
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	w.Version = r.Version
}

package dto

import (
	"gestock/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest creates a supplier.
type CreateSupplierRequest struct {
	StoreID string  `json:"storeId"`
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// ToEntity converts the request into a new Supplier.
func (r *CreateSupplierRequest) ToEntity() (*supplier.Supplier, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return nil, err
	}
	s := supplier.NewSupplier(storeID, r.Name)
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	return s, nil
}

// UpdateSupplierRequest updates a supplier.
type UpdateSupplierRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Supplier.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	s.Version = r.Version
}

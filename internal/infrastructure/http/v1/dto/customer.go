package dto

import (
	"gestock/internal/domain/catalogs/customer"
)

// CreateCustomerRequest creates a customer. Debt always starts at zero
// and only ever moves through exits and payments.
type CreateCustomerRequest struct {
	StoreID string  `json:"storeId"`
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// ToEntity converts the request into a new Customer.
func (r *CreateCustomerRequest) ToEntity() (*customer.Customer, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return nil, err
	}
	c := customer.NewCustomer(storeID, r.Name)
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	return c, nil
}

// UpdateCustomerRequest updates a customer. Debt is not editable.
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Customer.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	c.Version = r.Version
}

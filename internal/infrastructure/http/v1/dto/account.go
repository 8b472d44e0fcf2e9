package dto

import (
	"gestock/internal/domain/catalogs/account"
)

// CreateAccountRequest creates a financial account. Balances start at
// zero; an opening balance is an adjustment transaction.
type CreateAccountRequest struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=bank cash"`
}

// ToEntity converts the request into a new Account.
func (r *CreateAccountRequest) ToEntity() (*account.Account, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return nil, err
	}
	return account.NewAccount(storeID, r.Name, account.Type(r.Type)), nil
}

// UpdateAccountRequest updates an account. Type and balance are not
// editable through the catalog.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Account.
func (r *UpdateAccountRequest) ApplyTo(a *account.Account) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	a.Version = r.Version
}

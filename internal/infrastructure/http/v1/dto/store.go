package dto

import (
	"gestock/internal/domain/catalogs/store"
)

// CreateStoreRequest creates a store.
type CreateStoreRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts the request into a new Store.
func (r *CreateStoreRequest) ToEntity() *store.Store {
	st := store.NewStore(r.Code, r.Name)
	st.Description = r.Description
	return st
}

// UpdateStoreRequest updates a store. Version carries the optimistic
// locking expectation.
type UpdateStoreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request into an existing Store.
func (r *UpdateStoreRequest) ApplyTo(st *store.Store) {
	if r.Name != nil {
		st.Name = *r.Name
	}
	if r.Description != nil {
		st.Description = r.Description
	}
	if r.IsActive != nil {
		st.IsActive = *r.IsActive
	}
	st.Version = r.Version
}

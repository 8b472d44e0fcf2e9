// Package store provides the Store catalog, the tenant root of the system.
// Every other catalog record and document belongs to exactly one store.
package store

import (
	"context"
	"regexp"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// Store represents one shop operating on the shared platform.
type Store struct {
	entity.Catalog

	// Code is a short unique tag rendered into document numbers
	// (ENT-CODE-00001). Uppercase alphanumeric, at most 10 chars.
	Code string `db:"code" json:"code"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewStore creates an active Store.
func NewStore(code, name string) *Store {
	return &Store{
		Catalog: entity.NewCatalog(name),
		Code:    code,
	}
}

// Validate implements entity.Validatable interface.
func (s *Store) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !codePattern.MatchString(s.Code) {
		return apperror.NewValidation("code must be 1-10 uppercase letters or digits").
			WithDetail("field", "code").
			WithDetail("value", s.Code)
	}

	return nil
}

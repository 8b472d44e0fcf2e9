package store

import (
	"context"

	"gestock/internal/core/id"
)

// Repository defines persistence for the Store catalog.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, storeID id.ID) (*Store, error)
	GetByCode(ctx context.Context, code string) (*Store, error)
	List(ctx context.Context, activeOnly bool) ([]Store, error)
}

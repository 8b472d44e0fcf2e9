package auth

import (
	"context"

	"gestock/internal/core/id"
)

// UserFilter narrows user listings.
type UserFilter struct {
	StoreID    *id.ID
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository defines user storage operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
}

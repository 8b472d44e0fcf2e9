// Package scope carries the caller's data-visibility scope through context.
//
// Every authenticated request resolves to exactly one of two scopes:
// global (support staff, may address any store) or store-bound (all reads
// and writes are confined to one store). The scope is an explicit tagged
// value rather than a nullable store pointer, so code that forgets to
// check it fails loudly instead of silently widening to all stores.
package scope

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
)

// Kind discriminates the scope variants.
type Kind int

const (
	// KindGlobal grants access to every store.
	KindGlobal Kind = iota
	// KindStore confines access to a single store.
	KindStore
)

// UserScope is the resolved visibility of the authenticated user.
type UserScope struct {
	kind    Kind
	storeID id.ID

	// UserID identifies the caller for audit records.
	UserID id.ID
	// Username is carried for logging only.
	Username string
}

// Global returns a scope that may address any store.
func Global(userID id.ID, username string) UserScope {
	return UserScope{kind: KindGlobal, UserID: userID, Username: username}
}

// ForStore returns a scope confined to storeID.
func ForStore(userID id.ID, username string, storeID id.ID) UserScope {
	return UserScope{kind: KindStore, storeID: storeID, UserID: userID, Username: username}
}

// Kind returns the scope variant.
func (s UserScope) Kind() Kind { return s.kind }

// IsGlobal reports whether the scope may address any store.
func (s UserScope) IsGlobal() bool { return s.kind == KindGlobal }

// StoreID returns the bound store and whether the scope is store-bound.
func (s UserScope) StoreID() (id.ID, bool) {
	if s.kind == KindStore {
		return s.storeID, true
	}
	return id.Nil(), false
}

// CanAccess reports whether the scope may touch data of the given store.
func (s UserScope) CanAccess(storeID id.ID) bool {
	if s.kind == KindGlobal {
		return true
	}
	return s.storeID == storeID
}

// ResolveStore returns the store a write should target. Store-bound users
// always write to their own store; global users must name one explicitly.
func (s UserScope) ResolveStore(requested id.ID) (id.ID, error) {
	if sid, ok := s.StoreID(); ok {
		if !id.IsNil(requested) && requested != sid {
			return id.Nil(), apperror.NewCrossStoreReference("store", requested)
		}
		return sid, nil
	}
	if id.IsNil(requested) {
		return id.Nil(), apperror.NewValidation("store_id is required for global users")
	}
	return requested, nil
}

type scopeKey struct{}

// WithScope attaches the scope to ctx.
func WithScope(ctx context.Context, s UserScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the scope and whether one is present.
func FromContext(ctx context.Context) (UserScope, bool) {
	s, ok := ctx.Value(scopeKey{}).(UserScope)
	return s, ok
}

// MustFromContext returns the scope or an unauthorized error.
// Handlers install the scope via middleware, so a missing scope means the
// route was wired without authentication.
func MustFromContext(ctx context.Context) (UserScope, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return UserScope{}, apperror.NewUnauthorized("authentication required")
	}
	return s, nil
}

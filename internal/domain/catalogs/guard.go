// Package catalogs holds the scope guards shared by all store-scoped
// catalog services.
package catalogs

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
)

// ResolveStoreForCreate returns the store a new catalog record belongs to.
// Store-bound users always create into their own store; global users must
// name the store explicitly.
func ResolveStoreForCreate(ctx context.Context, requested id.ID) (id.ID, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return id.Nil(), err
	}
	return sc.ResolveStore(requested)
}

// CheckAccess verifies the caller may touch a record owned by storeID.
// Cross-store reads surface as not-found so record existence does not leak.
func CheckAccess(ctx context.Context, storeID id.ID, entityName string, entityID any) error {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if !sc.CanAccess(storeID) {
		return apperror.NewNotFound(entityName, entityID)
	}
	return nil
}

// StoreFilter narrows a listing to the stores the caller may see.
// Bound users always list their own store; a bound user asking for another
// store is rejected. Global users list the requested store, or all stores
// when none is named.
func StoreFilter(ctx context.Context, requested *id.ID) (*id.ID, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if storeID, bound := sc.StoreID(); bound {
		if requested != nil && *requested != storeID {
			return nil, apperror.NewCrossStoreReference("store", *requested)
		}
		return &storeID, nil
	}
	return requested, nil
}

package supplier

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a supplier to the caller's store. Names are unique per store.
func (s *Service) Create(ctx context.Context, sup *Supplier) (*Supplier, error) {
	storeID, err := catalogs.ResolveStoreForCreate(ctx, sup.StoreID)
	if err != nil {
		return nil, err
	}
	sup.StoreID = storeID

	if err := sup.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, storeID, sup.Name); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("supplier", "name", sup.Name)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// Update modifies a supplier.
func (s *Service) Update(ctx context.Context, sup *Supplier) (*Supplier, error) {
	current, err := s.GetByID(ctx, sup.ID)
	if err != nil {
		return nil, err
	}
	sup.StoreID = current.StoreID

	if err := sup.Validate(ctx); err != nil {
		return nil, err
	}

	if sup.Name != current.Name {
		if existing, err := s.repo.GetByName(ctx, sup.StoreID, sup.Name); err == nil && existing != nil && existing.ID != sup.ID {
			return nil, apperror.NewDuplicate("supplier", "name", sup.Name)
		} else if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// GetByID returns a supplier visible to the caller.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	sup, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, sup.StoreID, "supplier", supplierID); err != nil {
		return nil, err
	}
	return sup, nil
}

// List returns suppliers visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Supplier, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

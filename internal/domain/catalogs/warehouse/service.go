package warehouse

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs"
	"gestock/pkg/logger"
)

// Service provides business logic for the Warehouse catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Warehouse service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a warehouse to the caller's store.
// Names are unique within a store.
func (s *Service) Create(ctx context.Context, w *Warehouse) (*Warehouse, error) {
	storeID, err := catalogs.ResolveStoreForCreate(ctx, w.StoreID)
	if err != nil {
		return nil, err
	}
	w.StoreID = storeID

	if err := w.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, storeID, w.Name); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("warehouse", "name", w.Name)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	logger.Info(ctx, "warehouse created", "warehouse_id", w.ID.String(), "name", w.Name)
	return w, nil
}

// Update modifies a warehouse.
func (s *Service) Update(ctx context.Context, w *Warehouse) (*Warehouse, error) {
	current, err := s.GetByID(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	// Ownership is fixed at creation.
	w.StoreID = current.StoreID

	if err := w.Validate(ctx); err != nil {
		return nil, err
	}

	if w.Name != current.Name {
		if existing, err := s.repo.GetByName(ctx, w.StoreID, w.Name); err == nil && existing != nil && existing.ID != w.ID {
			return nil, apperror.NewDuplicate("warehouse", "name", w.Name)
		} else if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetByID returns a warehouse visible to the caller.
func (s *Service) GetByID(ctx context.Context, warehouseID id.ID) (*Warehouse, error) {
	w, err := s.repo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, w.StoreID, "warehouse", warehouseID); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns warehouses visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Warehouse, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

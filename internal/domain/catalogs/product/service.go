package product

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs"
	"gestock/pkg/logger"
)

// Service provides business logic for the Product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a product to the caller's store.
// References are unique within a store.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	storeID, err := catalogs.ResolveStoreForCreate(ctx, p.StoreID)
	if err != nil {
		return nil, err
	}
	p.StoreID = storeID

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByReference(ctx, storeID, p.Reference); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("product", "reference", p.Reference)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "product_id", p.ID.String(), "reference", p.Reference)
	return p, nil
}

// Update modifies a product.
func (s *Service) Update(ctx context.Context, p *Product) (*Product, error) {
	current, err := s.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.StoreID = current.StoreID

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if p.Reference != current.Reference {
		if existing, err := s.repo.GetByReference(ctx, p.StoreID, p.Reference); err == nil && existing != nil && existing.ID != p.ID {
			return nil, apperror.NewDuplicate("product", "reference", p.Reference)
		} else if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns a product visible to the caller.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, p.StoreID, "product", productID); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns products visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

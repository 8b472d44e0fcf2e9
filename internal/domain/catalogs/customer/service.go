package customer

import (
	"context"

	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs"
)

// Service provides business logic for the Customer catalog.
// Debt is never edited directly through this service: it moves only through
// stock exits, exit payments and debt payments.
type Service struct {
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a customer to the caller's store.
func (s *Service) Create(ctx context.Context, c *Customer) (*Customer, error) {
	storeID, err := catalogs.ResolveStoreForCreate(ctx, c.StoreID)
	if err != nil {
		return nil, err
	}
	c.StoreID = storeID
	// Debt starts at zero regardless of input.
	c.Debt = c.Debt.Sub(c.Debt)

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update modifies customer contact data. Debt is preserved from the
// stored record: the ledger owns it.
func (s *Service) Update(ctx context.Context, c *Customer) (*Customer, error) {
	current, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.StoreID = current.StoreID
	c.Debt = current.Debt

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns a customer visible to the caller.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, c.StoreID, "customer", customerID); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns customers visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Customer, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

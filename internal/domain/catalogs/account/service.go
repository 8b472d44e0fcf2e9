package account

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs"
)

// Service provides business logic for the Account catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an account to the caller's store.
func (s *Service) Create(ctx context.Context, a *Account) (*Account, error) {
	storeID, err := catalogs.ResolveStoreForCreate(ctx, a.StoreID)
	if err != nil {
		return nil, err
	}
	a.StoreID = storeID
	// Opening balances are entered through adjustment transactions,
	// never through the catalog.
	a.Balance = a.Balance.Sub(a.Balance)

	if err := a.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, storeID, a.Name); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("account", "name", a.Name)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update modifies account name, type or active flag. The balance is
// preserved from the stored record: the ledger owns it.
func (s *Service) Update(ctx context.Context, a *Account) (*Account, error) {
	current, err := s.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.StoreID = current.StoreID
	a.Balance = current.Balance

	if err := a.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, a.StoreID, a.Name); err == nil && existing != nil && existing.ID != a.ID {
		return nil, apperror.NewDuplicate("account", "name", a.Name)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID returns an account visible to the caller.
func (s *Service) GetByID(ctx context.Context, accountID id.ID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, a.StoreID, "account", accountID); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns accounts visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Account, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

package store

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/pkg/logger"
)

// Service provides business logic for the Store catalog.
// Store management is a platform operation: only global users may mutate it.
type Service struct {
	repo Repository
}

// NewService creates a new Store service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new store.
func (s *Service) Create(ctx context.Context, st *Store) (*Store, error) {
	if err := requireGlobal(ctx); err != nil {
		return nil, err
	}

	if err := st.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCode(ctx, st.Code); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("store", "code", st.Code)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	logger.Info(ctx, "store created", "store_id", st.ID.String(), "code", st.Code)
	return st, nil
}

// Update modifies store name, description or active flag.
// The code is frozen: issued document numbers embed it.
func (s *Service) Update(ctx context.Context, st *Store) (*Store, error) {
	if err := requireGlobal(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	if current.Code != st.Code {
		return nil, apperror.NewValidation("store code cannot be changed").
			WithDetail("field", "code")
	}

	if err := st.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetByID returns a store visible to the caller.
func (s *Service) GetByID(ctx context.Context, storeID id.ID) (*Store, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !sc.CanAccess(storeID) {
		return nil, apperror.NewNotFound("store", storeID)
	}
	return s.repo.GetByID(ctx, storeID)
}

// List returns stores visible to the caller: all of them for global users,
// their own for store-bound users.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Store, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if storeID, bound := sc.StoreID(); bound {
		st, err := s.repo.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		if activeOnly && !st.IsActive {
			return []Store{}, nil
		}
		return []Store{*st}, nil
	}

	return s.repo.List(ctx, activeOnly)
}

func requireGlobal(ctx context.Context) error {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if !sc.IsGlobal() {
		return apperror.NewForbidden("store management requires global access")
	}
	return nil
}

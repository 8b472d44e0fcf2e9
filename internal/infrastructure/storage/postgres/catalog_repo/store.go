package catalog_repo

import (
	"context"

	"gestock/internal/domain/catalogs/store"
	"gestock/internal/infrastructure/storage/postgres"

	"github.com/Masterminds/squirrel"
)

const storesTable = "cat_stores"

// Compile-time check against the domain contract.
var _ store.Repository = (*StoreRepo)(nil)

// StoreRepo implements store.Repository.
type StoreRepo struct {
	*BaseCatalogRepo[*store.Store]
}

// NewStoreRepo creates a store repository.
func NewStoreRepo(txManager *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			storesTable,
			"store",
			postgres.ExtractDBColumns[store.Store](),
			func() *store.Store { return &store.Store{} },
		),
	}
}

// GetByCode retrieves a store by its unique code.
func (r *StoreRepo) GetByCode(ctx context.Context, code string) (*store.Store, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Limit(1)
	return r.getOne(ctx, q, code)
}

// List retrieves stores ordered by code.
func (r *StoreRepo) List(ctx context.Context, activeOnly bool) ([]store.Store, error) {
	q := r.baseSelect().OrderBy("code")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return selectInto[store.Store](ctx, r.Querier(ctx), q)
}

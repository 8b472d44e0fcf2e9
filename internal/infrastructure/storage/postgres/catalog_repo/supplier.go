package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs/supplier"
	"gestock/internal/infrastructure/storage/postgres"
)

const suppliersTable = "cat_suppliers"

var _ supplier.Repository = (*SupplierRepo)(nil)

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			suppliersTable,
			"supplier",
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// GetByName retrieves a supplier by name within one store.
func (r *SupplierRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*supplier.Supplier, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID, "name": name}).
		Limit(1)
	return r.getOne(ctx, q, name)
}

// List retrieves suppliers ordered by name.
func (r *SupplierRepo) List(ctx context.Context, f supplier.Filter) ([]supplier.Supplier, error) {
	q := r.baseSelect().OrderBy("name")
	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}
	return selectInto[supplier.Supplier](ctx, r.Querier(ctx), q)
}

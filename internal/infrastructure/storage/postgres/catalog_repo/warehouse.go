package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/infrastructure/storage/postgres"
)

const warehousesTable = "cat_warehouses"

var _ warehouse.Repository = (*WarehouseRepo)(nil)

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a warehouse repository.
func NewWarehouseRepo(txManager *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			warehousesTable,
			"warehouse",
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}

// GetByName retrieves a warehouse by name within one store.
func (r *WarehouseRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*warehouse.Warehouse, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID, "name": name}).
		Limit(1)
	return r.getOne(ctx, q, name)
}

// List retrieves warehouses ordered by name.
func (r *WarehouseRepo) List(ctx context.Context, f warehouse.Filter) ([]warehouse.Warehouse, error) {
	q := r.baseSelect().OrderBy("name")
	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return selectInto[warehouse.Warehouse](ctx, r.Querier(ctx), q)
}

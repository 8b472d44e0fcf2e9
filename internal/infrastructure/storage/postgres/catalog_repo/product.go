package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/infrastructure/storage/postgres"
)

const productsTable = "cat_products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productsTable,
			"product",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetByReference retrieves a product by reference within one store.
func (r *ProductRepo) GetByReference(ctx context.Context, storeID id.ID, reference string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID, "reference": reference}).
		Limit(1)
	return r.getOne(ctx, q, reference)
}

// List retrieves products ordered by reference.
func (r *ProductRepo) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	q := r.baseSelect().OrderBy("reference")
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
			squirrel.ILike{"reference": pattern},
		})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return selectInto[product.Product](ctx, r.Querier(ctx), q)
}

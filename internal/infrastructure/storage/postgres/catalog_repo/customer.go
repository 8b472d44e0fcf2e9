package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
	"gestock/internal/domain/catalogs/customer"
	"gestock/internal/infrastructure/storage/postgres"
)

const customersTable = "cat_customers"

var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			customersTable,
			"customer",
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// SetDebt persists a new debt value. The row must already be locked via
// GetByIDForUpdate; the write is deliberately version-blind so that two
// debt deltas in one request (exit + payment) do not trip the optimistic
// lock against each other.
func (r *CustomerRepo) SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error {
	q := r.Builder().
		Update(customersTable).
		Set("debt", debt).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build debt update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer debt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID)
	}

	return nil
}

// List retrieves customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context, f customer.Filter) ([]customer.Customer, error) {
	q := r.baseSelect().OrderBy("name")
	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if f.WithDebt {
		q = q.Where(squirrel.Gt{"debt": 0})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}
	return selectInto[customer.Customer](ctx, r.Querier(ctx), q)
}

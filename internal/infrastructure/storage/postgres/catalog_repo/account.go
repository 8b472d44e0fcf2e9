package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
	"gestock/internal/domain/catalogs/account"
	"gestock/internal/infrastructure/storage/postgres"
)

const accountsTable = "cat_accounts"

var _ account.Repository = (*AccountRepo)(nil)

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
}

// NewAccountRepo creates an account repository.
func NewAccountRepo(txManager *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			accountsTable,
			"account",
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
	}
}

// GetByName retrieves an account by name within one store.
func (r *AccountRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*account.Account, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID, "name": name}).
		Limit(1)
	return r.getOne(ctx, q, name)
}

// SetBalance persists a new balance. The row must already be locked via
// GetByIDForUpdate; like SetDebt, the write is version-blind so several
// ledger lines in one transaction can move the same account.
func (r *AccountRepo) SetBalance(ctx context.Context, accountID id.ID, balance types.Money) error {
	q := r.Builder().
		Update(accountsTable).
		Set("balance", balance).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build balance update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("account", accountID)
	}

	return nil
}

// FindDefault returns the store's default payment account: the first
// active cash account, else the first active bank account.
func (r *AccountRepo) FindDefault(ctx context.Context, storeID id.ID) (*account.Account, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID, "is_active": true}).
		OrderBy("CASE type WHEN 'cash' THEN 0 ELSE 1 END", "created_at").
		Limit(1)
	return r.getOne(ctx, q, storeID)
}

// List retrieves accounts ordered by type then name.
func (r *AccountRepo) List(ctx context.Context, f account.Filter) ([]account.Account, error) {
	q := r.baseSelect().OrderBy("type", "name")
	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	return selectInto[account.Account](ctx, r.Querier(ctx), q)
}

// Package finance_repo provides PostgreSQL implementations for the
// transaction ledger and invoice repositories. Both are append-only
// surfaces: no update, no delete.
package finance_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/infrastructure/storage/postgres"
)

const transactionsTable = "fin_transactions"

var _ transaction.Repository = (*TransactionRepo)(nil)

// TransactionRepo implements transaction.Repository.
type TransactionRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewTransactionRepo creates a transaction ledger repository.
func NewTransactionRepo(txManager *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[transaction.Transaction](),
	}
}

func (r *TransactionRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts one ledger line.
func (r *TransactionRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	data := postgres.StructToMap(t)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.Insert(transactionsTable).SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

// GetByID retrieves one ledger line.
func (r *TransactionRepo) GetByID(ctx context.Context, transactionID id.ID) (*transaction.Transaction, error) {
	q := r.builder.Select(r.selectCols...).
		From(transactionsTable).
		Where(squirrel.Eq{"id": transactionID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t transaction.Transaction
	if err := pgxscan.Get(ctx, r.querier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("transaction", transactionID)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &t, nil
}

// List retrieves ledger lines, newest first.
func (r *TransactionRepo) List(ctx context.Context, f transaction.Filter) ([]transaction.Transaction, error) {
	q := r.builder.Select(r.selectCols...).
		From(transactionsTable).
		OrderBy("date DESC", "number DESC")

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	if f.AccountID != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"from_account_id": *f.AccountID},
			squirrel.Eq{"to_account_id": *f.AccountID},
		})
	}
	if f.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *f.CustomerID})
	}
	if f.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.FromDate})
	}
	if f.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.ToDate})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []transaction.Transaction
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	return lines, nil
}

// ExistsForSource reports whether a line of the given type was already
// spawned by the source document.
func (r *TransactionRepo) ExistsForSource(ctx context.Context, sourceDocumentID id.ID, txType transaction.Type) (bool, error) {
	q := r.builder.Select("1").
		From(transactionsTable).
		Where(squirrel.Eq{
			"source_document_id": sourceDocumentID,
			"type":               txType,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check source transaction: %w", err)
	}

	return true, nil
}

package finance_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/finance/invoice"
	"gestock/internal/infrastructure/storage/postgres"
)

const invoicesTable = "doc_invoices"

var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewInvoiceRepo creates an invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[invoice.Invoice](),
	}
}

func (r *InvoiceRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts one invoice.
func (r *InvoiceRepo) Create(ctx context.Context, i *invoice.Invoice) error {
	data := postgres.StructToMap(i)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.Insert(invoicesTable).SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, notFoundID any) (*invoice.Invoice, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var i invoice.Invoice
	if err := pgxscan.Get(ctx, r.querier(ctx), &i, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", notFoundID)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &i, nil
}

// GetByID retrieves one invoice.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.builder.Select(r.selectCols...).
		From(invoicesTable).
		Where(squirrel.Eq{"id": invoiceID}).
		Limit(1)
	return r.getOne(ctx, q, invoiceID)
}

// GetByStockExit retrieves the invoice spawned by one exit.
func (r *InvoiceRepo) GetByStockExit(ctx context.Context, stockExitID id.ID) (*invoice.Invoice, error) {
	q := r.builder.Select(r.selectCols...).
		From(invoicesTable).
		Where(squirrel.Eq{"stock_exit_id": stockExitID}).
		Limit(1)
	return r.getOne(ctx, q, stockExitID)
}

// List retrieves invoices, newest first.
func (r *InvoiceRepo) List(ctx context.Context, f invoice.Filter) ([]invoice.Invoice, error) {
	q := r.builder.Select(r.selectCols...).
		From(invoicesTable).
		OrderBy("date DESC", "number DESC")

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
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

	var invoices []invoice.Invoice
	if err := pgxscan.Select(ctx, r.querier(ctx), &invoices, sql, args...); err != nil {
		return nil, fmt.Errorf("select invoices: %w", err)
	}

	return invoices, nil
}

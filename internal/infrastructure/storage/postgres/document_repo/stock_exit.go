package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/documents/stock_exit"
	"gestock/internal/infrastructure/storage/postgres"
)

const (
	stockExitsTable     = "doc_stock_exits"
	stockExitItemsTable = "doc_stock_exit_items"
)

var stockExitItemColumns = []string{
	"id", "exit_id", "line_no", "product_id",
	"quantity", "sale_price", "total_price",
}

var _ stock_exit.Repository = (*StockExitRepo)(nil)

// StockExitRepo implements stock_exit.Repository.
type StockExitRepo struct {
	*BaseDocumentRepo[*stock_exit.StockExit]
}

// NewStockExitRepo creates a stock exit repository.
func NewStockExitRepo(txManager *postgres.TxManager) *StockExitRepo {
	return &StockExitRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			stockExitsTable,
			"stock exit",
			postgres.ExtractDBColumns[stock_exit.StockExit](),
			func() *stock_exit.StockExit { return &stock_exit.StockExit{} },
		),
	}
}

// Create inserts the header and all items.
func (r *StockExitRepo) Create(ctx context.Context, e *stock_exit.StockExit) error {
	if err := r.createHeader(ctx, e); err != nil {
		return err
	}
	return r.insertItems(ctx, e.ID, e.Items)
}

func (r *StockExitRepo) insertItems(ctx context.Context, exitID id.ID, items []stock_exit.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(stockExitItemsTable).Columns(stockExitItemColumns...)
	for _, item := range items {
		q = q.Values(
			item.ID, exitID, item.LineNo, item.ProductID,
			item.Quantity, item.SalePrice, item.TotalPrice,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert exit items: %w", err)
	}

	return nil
}

func (r *StockExitRepo) loadItems(ctx context.Context, exitIDs []id.ID) (map[id.ID][]stock_exit.Item, error) {
	if len(exitIDs) == 0 {
		return nil, nil
	}

	q := r.Builder().
		Select(stockExitItemColumns...).
		From(stockExitItemsTable).
		Where(squirrel.Eq{"exit_id": exitIDs}).
		OrderBy("line_no")

	items, err := selectItems[stock_exit.Item](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}

	byExit := make(map[id.ID][]stock_exit.Item, len(exitIDs))
	for _, item := range items {
		byExit[item.ExitID] = append(byExit[item.ExitID], item)
	}
	return byExit, nil
}

// GetByID loads the header with its items.
func (r *StockExitRepo) GetByID(ctx context.Context, exitID id.ID) (*stock_exit.StockExit, error) {
	return r.get(ctx, exitID, false)
}

// GetByIDForUpdate loads the header with its items and locks the header
// row for the current transaction.
func (r *StockExitRepo) GetByIDForUpdate(ctx context.Context, exitID id.ID) (*stock_exit.StockExit, error) {
	return r.get(ctx, exitID, true)
}

func (r *StockExitRepo) get(ctx context.Context, exitID id.ID, forUpdate bool) (*stock_exit.StockExit, error) {
	e, err := r.getHeader(ctx, exitID, forUpdate)
	if err != nil {
		return nil, err
	}

	byExit, err := r.loadItems(ctx, []id.ID{e.ID})
	if err != nil {
		return nil, err
	}
	e.Items = byExit[e.ID]

	return e, nil
}

// AddItem inserts one item and persists the recalculated header totals
// and payment fields.
func (r *StockExitRepo) AddItem(ctx context.Context, e *stock_exit.StockExit, item *stock_exit.Item) error {
	if err := r.insertItems(ctx, e.ID, []stock_exit.Item{*item}); err != nil {
		return err
	}

	err := r.updateHeader(ctx, e.ID, e.Version, map[string]any{
		"total_amount":     e.TotalAmount,
		"paid_amount":      e.PaidAmount,
		"remaining_amount": e.RemainingAmount,
		"payment_status":   e.PaymentStatus,
		"updated_at":       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	e.SetVersion(e.Version + 1)
	return nil
}

// UpdatePayment persists the paid, remaining and status fields of a row
// locked by GetByIDForUpdate.
func (r *StockExitRepo) UpdatePayment(ctx context.Context, e *stock_exit.StockExit) error {
	err := r.updateHeader(ctx, e.ID, e.Version, map[string]any{
		"paid_amount":      e.PaidAmount,
		"remaining_amount": e.RemainingAmount,
		"payment_status":   e.PaymentStatus,
		"updated_at":       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	e.SetVersion(e.Version + 1)
	return nil
}

// List retrieves exits with their items, newest first.
func (r *StockExitRepo) List(ctx context.Context, f stock_exit.Filter) ([]stock_exit.StockExit, error) {
	q := r.baseSelect().OrderBy("date DESC", "number DESC")

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *f.WarehouseID})
	}
	if f.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *f.CustomerID})
	}
	if f.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *f.PaymentStatus})
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

	return r.listWithItems(ctx, q)
}

// ListUnpaidByCustomer returns the customer's exits that still carry a
// remaining amount, oldest first.
func (r *StockExitRepo) ListUnpaidByCustomer(ctx context.Context, customerID id.ID) ([]stock_exit.StockExit, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Gt{"remaining_amount": 0}).
		OrderBy("date ASC", "number ASC")

	return r.listWithItems(ctx, q)
}

func (r *StockExitRepo) listWithItems(ctx context.Context, q squirrel.SelectBuilder) ([]stock_exit.StockExit, error) {
	exits, err := selectHeaders[stock_exit.StockExit](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}
	if len(exits) == 0 {
		return exits, nil
	}

	ids := make([]id.ID, 0, len(exits))
	for i := range exits {
		ids = append(ids, exits[i].ID)
	}

	byExit, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range exits {
		exits[i].Items = byExit[exits[i].ID]
	}

	return exits, nil
}

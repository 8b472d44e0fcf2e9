package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/documents/stock_entry"
	"gestock/internal/infrastructure/storage/postgres"
)

const (
	stockEntriesTable    = "doc_stock_entries"
	stockEntryItemsTable = "doc_stock_entry_items"
)

var stockEntryItemColumns = []string{
	"id", "entry_id", "line_no", "product_id",
	"quantity", "purchase_price", "total_price",
}

var _ stock_entry.Repository = (*StockEntryRepo)(nil)

// StockEntryRepo implements stock_entry.Repository.
type StockEntryRepo struct {
	*BaseDocumentRepo[*stock_entry.StockEntry]
}

// NewStockEntryRepo creates a stock entry repository.
func NewStockEntryRepo(txManager *postgres.TxManager) *StockEntryRepo {
	return &StockEntryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			stockEntriesTable,
			"stock entry",
			postgres.ExtractDBColumns[stock_entry.StockEntry](),
			func() *stock_entry.StockEntry { return &stock_entry.StockEntry{} },
		),
	}
}

// Create inserts the header and all items.
func (r *StockEntryRepo) Create(ctx context.Context, e *stock_entry.StockEntry) error {
	if err := r.createHeader(ctx, e); err != nil {
		return err
	}
	return r.insertItems(ctx, e.ID, e.Items)
}

func (r *StockEntryRepo) insertItems(ctx context.Context, entryID id.ID, items []stock_entry.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(stockEntryItemsTable).Columns(stockEntryItemColumns...)
	for _, item := range items {
		q = q.Values(
			item.ID, entryID, item.LineNo, item.ProductID,
			item.Quantity, item.PurchasePrice, item.TotalPrice,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entry items: %w", err)
	}

	return nil
}

func (r *StockEntryRepo) loadItems(ctx context.Context, entryIDs []id.ID) (map[id.ID][]stock_entry.Item, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	q := r.Builder().
		Select(stockEntryItemColumns...).
		From(stockEntryItemsTable).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		OrderBy("line_no")

	items, err := selectItems[stock_entry.Item](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}

	byEntry := make(map[id.ID][]stock_entry.Item, len(entryIDs))
	for _, item := range items {
		byEntry[item.EntryID] = append(byEntry[item.EntryID], item)
	}
	return byEntry, nil
}

// GetByID loads the header with its items.
func (r *StockEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*stock_entry.StockEntry, error) {
	return r.get(ctx, entryID, false)
}

// GetByIDForUpdate locks the header row for the current transaction.
func (r *StockEntryRepo) GetByIDForUpdate(ctx context.Context, entryID id.ID) (*stock_entry.StockEntry, error) {
	return r.get(ctx, entryID, true)
}

func (r *StockEntryRepo) get(ctx context.Context, entryID id.ID, forUpdate bool) (*stock_entry.StockEntry, error) {
	e, err := r.getHeader(ctx, entryID, forUpdate)
	if err != nil {
		return nil, err
	}

	byEntry, err := r.loadItems(ctx, []id.ID{e.ID})
	if err != nil {
		return nil, err
	}
	e.Items = byEntry[e.ID]

	return e, nil
}

// AddItem inserts one item and persists the recalculated header total.
func (r *StockEntryRepo) AddItem(ctx context.Context, e *stock_entry.StockEntry, item *stock_entry.Item) error {
	if err := r.insertItems(ctx, e.ID, []stock_entry.Item{*item}); err != nil {
		return err
	}

	err := r.updateHeader(ctx, e.ID, e.Version, map[string]any{
		"total_amount": e.TotalAmount,
		"updated_at":   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	e.SetVersion(e.Version + 1)
	return nil
}

// List retrieves entries with their items, newest first.
func (r *StockEntryRepo) List(ctx context.Context, f stock_entry.Filter) ([]stock_entry.StockEntry, error) {
	q := r.baseSelect().OrderBy("date DESC", "number DESC")

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *f.WarehouseID})
	}
	if f.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *f.SupplierID})
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

	entries, err := selectHeaders[stock_entry.StockEntry](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]id.ID, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].ID)
	}

	byEntry, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Items = byEntry[entries[i].ID]
	}

	return entries, nil
}

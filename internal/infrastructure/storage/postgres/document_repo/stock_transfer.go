package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"gestock/internal/core/id"
	"gestock/internal/domain/documents/stock_transfer"
	"gestock/internal/infrastructure/storage/postgres"
)

const (
	stockTransfersTable     = "doc_stock_transfers"
	stockTransferItemsTable = "doc_stock_transfer_items"
)

var stockTransferItemColumns = []string{
	"id", "transfer_id", "line_no", "product_id", "quantity",
}

var _ stock_transfer.Repository = (*StockTransferRepo)(nil)

// StockTransferRepo implements stock_transfer.Repository.
type StockTransferRepo struct {
	*BaseDocumentRepo[*stock_transfer.StockTransfer]
}

// NewStockTransferRepo creates a stock transfer repository.
func NewStockTransferRepo(txManager *postgres.TxManager) *StockTransferRepo {
	return &StockTransferRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			stockTransfersTable,
			"stock transfer",
			postgres.ExtractDBColumns[stock_transfer.StockTransfer](),
			func() *stock_transfer.StockTransfer { return &stock_transfer.StockTransfer{} },
		),
	}
}

// Create inserts the header and all items.
func (r *StockTransferRepo) Create(ctx context.Context, t *stock_transfer.StockTransfer) error {
	if err := r.createHeader(ctx, t); err != nil {
		return err
	}
	return r.insertItems(ctx, t.ID, t.Items)
}

func (r *StockTransferRepo) insertItems(ctx context.Context, transferID id.ID, items []stock_transfer.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().Insert(stockTransferItemsTable).Columns(stockTransferItemColumns...)
	for _, item := range items {
		q = q.Values(item.ID, transferID, item.LineNo, item.ProductID, item.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transfer items: %w", err)
	}

	return nil
}

func (r *StockTransferRepo) loadItems(ctx context.Context, transferIDs []id.ID) (map[id.ID][]stock_transfer.Item, error) {
	if len(transferIDs) == 0 {
		return nil, nil
	}

	q := r.Builder().
		Select(stockTransferItemColumns...).
		From(stockTransferItemsTable).
		Where(squirrel.Eq{"transfer_id": transferIDs}).
		OrderBy("line_no")

	items, err := selectItems[stock_transfer.Item](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}

	byTransfer := make(map[id.ID][]stock_transfer.Item, len(transferIDs))
	for _, item := range items {
		byTransfer[item.TransferID] = append(byTransfer[item.TransferID], item)
	}
	return byTransfer, nil
}

// GetByID loads the header with its items.
func (r *StockTransferRepo) GetByID(ctx context.Context, transferID id.ID) (*stock_transfer.StockTransfer, error) {
	return r.get(ctx, transferID, false)
}

// GetByIDForUpdate loads the header with its items and locks the header
// row for the current transaction.
func (r *StockTransferRepo) GetByIDForUpdate(ctx context.Context, transferID id.ID) (*stock_transfer.StockTransfer, error) {
	return r.get(ctx, transferID, true)
}

func (r *StockTransferRepo) get(ctx context.Context, transferID id.ID, forUpdate bool) (*stock_transfer.StockTransfer, error) {
	t, err := r.getHeader(ctx, transferID, forUpdate)
	if err != nil {
		return nil, err
	}

	byTransfer, err := r.loadItems(ctx, []id.ID{t.ID})
	if err != nil {
		return nil, err
	}
	t.Items = byTransfer[t.ID]

	return t, nil
}

// AddItem inserts one item for a pending transfer.
func (r *StockTransferRepo) AddItem(ctx context.Context, t *stock_transfer.StockTransfer, item *stock_transfer.Item) error {
	if err := r.insertItems(ctx, t.ID, []stock_transfer.Item{*item}); err != nil {
		return err
	}

	err := r.updateHeader(ctx, t.ID, t.Version, map[string]any{
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	t.SetVersion(t.Version + 1)
	return nil
}

// UpdateStatus persists the status of a row locked by GetByIDForUpdate.
func (r *StockTransferRepo) UpdateStatus(ctx context.Context, t *stock_transfer.StockTransfer) error {
	err := r.updateHeader(ctx, t.ID, t.Version, map[string]any{
		"status":       t.Status,
		"completed_at": t.CompletedAt,
		"updated_at":   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	t.SetVersion(t.Version + 1)
	return nil
}

// List retrieves transfers with their items, newest first.
func (r *StockTransferRepo) List(ctx context.Context, f stock_transfer.Filter) ([]stock_transfer.StockTransfer, error) {
	q := r.baseSelect().OrderBy("date DESC", "number DESC")

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.FromWarehouseID != nil {
		q = q.Where(squirrel.Eq{"from_warehouse_id": *f.FromWarehouseID})
	}
	if f.ToWarehouseID != nil {
		q = q.Where(squirrel.Eq{"to_warehouse_id": *f.ToWarehouseID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
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

	transfers, err := selectHeaders[stock_transfer.StockTransfer](ctx, r.Querier(ctx), q)
	if err != nil {
		return nil, err
	}
	if len(transfers) == 0 {
		return transfers, nil
	}

	ids := make([]id.ID, 0, len(transfers))
	for i := range transfers {
		ids = append(ids, transfers[i].ID)
	}

	byTransfer, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range transfers {
		transfers[i].Items = byTransfer[transfers[i].ID]
	}

	return transfers, nil
}

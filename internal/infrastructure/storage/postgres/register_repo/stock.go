// Package register_repo provides the PostgreSQL implementation of the
// stock register: the level matrix plus the append-only movement journal.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestock/internal/core/id"
	"gestock/internal/domain/registers/stock"
	"gestock/internal/infrastructure/storage/postgres"
)

const (
	stockLevelsTable    = "reg_stock_levels"
	stockMovementsTable = "reg_stock_movements"
)

var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *StockRepo) levelSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"product_id", "warehouse_id", "quantity", "last_updated",
	).From(stockLevelsTable)
}

// getLevel scans one cell; a missing row reads as a zero level.
func (r *StockRepo) getLevel(ctx context.Context, q squirrel.SelectBuilder, productID, warehouseID id.ID) (stock.Level, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return stock.Level{}, fmt.Errorf("build query: %w", err)
	}

	var level stock.Level
	if err := pgxscan.Get(ctx, r.querier(ctx), &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return stock.Level{
				ProductID:   productID,
				WarehouseID: warehouseID,
			}, nil
		}
		return stock.Level{}, fmt.Errorf("get stock level: %w", err)
	}

	return level, nil
}

// GetLevel returns the current level, zero if the cell has no row.
func (r *StockRepo) GetLevel(ctx context.Context, productID, warehouseID id.ID) (stock.Level, error) {
	q := r.levelSelect().
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Limit(1)
	return r.getLevel(ctx, q, productID, warehouseID)
}

// GetLevelForUpdate locks the cell row for the current transaction.
// Missing cells return a zero level without creating a row; the first
// receipt creates the row via AddQuantity's upsert.
func (r *StockRepo) GetLevelForUpdate(ctx context.Context, productID, warehouseID id.ID) (stock.Level, error) {
	q := r.levelSelect().
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Suffix("FOR UPDATE").
		Limit(1)
	return r.getLevel(ctx, q, productID, warehouseID)
}

// AddQuantity atomically adds qty to the cell, creating the row at qty
// if absent.
func (r *StockRepo) AddQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("AddQuantity requires positive qty, got %d", qty)
	}

	sql := `
		INSERT INTO ` + stockLevelsTable + ` (product_id, warehouse_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = ` + stockLevelsTable + `.quantity + EXCLUDED.quantity,
		              last_updated = EXCLUDED.last_updated
	`

	if _, err := r.querier(ctx).Exec(ctx, sql, productID, warehouseID, qty, time.Now().UTC()); err != nil {
		return fmt.Errorf("add stock quantity: %w", err)
	}

	return nil
}

// SetQuantity overwrites the cell quantity. The row must have been
// locked via GetLevelForUpdate first.
func (r *StockRepo) SetQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	q := r.builder.Update(stockLevelsTable).
		Set("quantity", qty).
		Set("last_updated", time.Now().UTC()).
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("stock cell %s/%s has no row to update", productID, warehouseID)
	}

	return nil
}

// GetLevelsByWarehouse lists levels of one warehouse.
func (r *StockRepo) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, f stock.LevelFilter) ([]stock.Level, error) {
	q := r.levelSelect().
		Where(squirrel.Eq{"warehouse_id": warehouseID}).
		OrderBy("product_id")

	if f.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": 0})
	}
	if len(f.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": f.ProductIDs})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var levels []stock.Level
	if err := pgxscan.Select(ctx, r.querier(ctx), &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("select levels: %w", err)
	}

	return levels, nil
}

// GetLevelsByProduct lists non-zero levels of one product across warehouses.
func (r *StockRepo) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]stock.Level, error) {
	q := r.levelSelect().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": 0}).
		OrderBy("warehouse_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var levels []stock.Level
	if err := pgxscan.Select(ctx, r.querier(ctx), &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("select levels: %w", err)
	}

	return levels, nil
}

var movementColumns = []string{
	"id", "store_id", "product_id", "warehouse_id",
	"direction", "quantity",
	"document_id", "document_type", "created_at",
}

// RecordMovements appends journal lines.
func (r *StockRepo) RecordMovements(ctx context.Context, movements []stock.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.ID, m.StoreID, m.ProductID, m.WarehouseID,
				m.Direction, m.Quantity,
				m.DocumentID, m.DocumentType, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, movementColumns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	// Fallback: plain insert. Prefer calling RecordMovements within tx.
	q := r.builder.Insert(stockMovementsTable).Columns(movementColumns...)
	for _, m := range movements {
		q = q.Values(
			m.ID, m.StoreID, m.ProductID, m.WarehouseID,
			m.Direction, m.Quantity,
			m.DocumentID, m.DocumentType, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// GetMovementHistory lists journal lines of a product, newest first.
func (r *StockRepo) GetMovementHistory(ctx context.Context, productID id.ID, f stock.MovementFilter) ([]stock.Movement, error) {
	q := r.builder.Select(movementColumns...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at DESC")

	if f.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *f.WarehouseID})
	}
	if f.Direction != nil {
		q = q.Where(squirrel.Eq{"direction": *f.Direction})
	}
	if f.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.FromDate})
	}
	if f.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.ToDate})
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

	var movements []stock.Movement
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

package stock

import (
	"context"

	"gestock/internal/core/id"
)

// Repository defines persistence for the stock register.
//
// All mutating methods are called inside an open transaction; the
// level/journal pair they write is atomic with the document that
// triggered it.
type Repository interface {
	// GetLevel returns the current level, zero if the cell has no row.
	GetLevel(ctx context.Context, productID, warehouseID id.ID) (Level, error)

	// GetLevelForUpdate locks the cell row for the current transaction.
	// Missing cells return a zero level without creating a row.
	GetLevelForUpdate(ctx context.Context, productID, warehouseID id.ID) (Level, error)

	// AddQuantity atomically adds qty to the cell, creating the row at qty
	// if absent. qty must be positive.
	AddQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error

	// SetQuantity overwrites the cell quantity. The row must have been
	// locked via GetLevelForUpdate first.
	SetQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error

	// GetLevelsByWarehouse lists levels of one warehouse.
	GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, f LevelFilter) ([]Level, error)

	// GetLevelsByProduct lists non-zero levels of one product across warehouses.
	GetLevelsByProduct(ctx context.Context, productID id.ID) ([]Level, error)

	// RecordMovements appends journal lines.
	RecordMovements(ctx context.Context, movements []Movement) error

	// GetMovementHistory lists journal lines of a product, newest first.
	GetMovementHistory(ctx context.Context, productID id.ID, f MovementFilter) ([]Movement, error)
}

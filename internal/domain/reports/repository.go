package reports

import (
	"context"

	"gestock/internal/core/id"
)

// Repository defines report data access.
type Repository interface {
	GetStockLevels(ctx context.Context, filter StockLevelsFilter) (*StockLevelsReport, error)

	// GetLowStock lists products at or below their alert threshold,
	// summed across the store's warehouses.
	GetLowStock(ctx context.Context, storeID *id.ID) ([]LowStockItem, error)

	GetCustomerDebts(ctx context.Context, filter CustomerDebtFilter) (*CustomerDebtReport, error)

	GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error)
}

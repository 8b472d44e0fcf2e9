// Package reports provides read-only reporting over the stock register,
// the catalogs and the documents. Reports never mutate state and run on
// the read path.
package reports

import (
	"time"

	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// --- Stock levels ---

// StockLevelsFilter narrows the stock levels report.
type StockLevelsFilter struct {
	StoreID     *id.ID
	WarehouseID *id.ID
	ProductID   *id.ID

	// ExcludeZero drops empty cells from the result
	ExcludeZero bool

	Limit  int
	Offset int
}

// StockLevelsItem is one (product, warehouse) row.
type StockLevelsItem struct {
	ProductID        id.ID  `db:"product_id" json:"productId"`
	ProductReference string `db:"product_reference" json:"productReference"`
	ProductName      string `db:"product_name" json:"productName"`
	Unit             string `db:"unit" json:"unit"`
	WarehouseID      id.ID  `db:"warehouse_id" json:"warehouseId"`
	WarehouseName    string `db:"warehouse_name" json:"warehouseName"`
	Quantity         int64  `db:"quantity" json:"quantity"`
	MinStockAlert    int64  `db:"min_stock_alert" json:"minStockAlert"`
}

// StockLevelsReport is the full stock levels result.
type StockLevelsReport struct {
	Items      []StockLevelsItem `json:"items"`
	TotalItems int               `json:"totalItems"`
}

// --- Low stock ---

// LowStockItem is a product whose total quantity across all warehouses
// of its store is at or below its alert threshold.
type LowStockItem struct {
	ProductID        id.ID  `db:"product_id" json:"productId"`
	ProductReference string `db:"product_reference" json:"productReference"`
	ProductName      string `db:"product_name" json:"productName"`
	Quantity         int64  `db:"quantity" json:"quantity"`
	MinStockAlert    int64  `db:"min_stock_alert" json:"minStockAlert"`
}

// --- Customer debts ---

// CustomerDebtFilter narrows the debt report.
type CustomerDebtFilter struct {
	StoreID *id.ID

	// MinDebt keeps only customers owing at least this much; nil keeps
	// everyone with a positive debt
	MinDebt *types.Money

	Limit  int
	Offset int
}

// CustomerDebtItem is one indebted customer.
type CustomerDebtItem struct {
	CustomerID   id.ID       `db:"customer_id" json:"customerId"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	Phone        *string     `db:"phone" json:"phone,omitempty"`
	Debt         types.Money `db:"debt" json:"debt"`
	UnpaidExits  int         `db:"unpaid_exits" json:"unpaidExits"`
}

// CustomerDebtReport is the full debt result.
type CustomerDebtReport struct {
	Items      []CustomerDebtItem `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalDebt  types.Money        `json:"totalDebt"`
}

// --- Sales summary ---

// SalesSummaryFilter bounds the summary period.
type SalesSummaryFilter struct {
	StoreID  *id.ID
	FromDate time.Time
	ToDate   time.Time
}

// SalesSummary aggregates the exits of a period.
type SalesSummary struct {
	FromDate  time.Time   `json:"fromDate"`
	ToDate    time.Time   `json:"toDate"`
	ExitCount int         `db:"exit_count" json:"exitCount"`
	Total     types.Money `db:"total" json:"total"`
	Paid      types.Money `db:"paid" json:"paid"`
	Remaining types.Money `db:"remaining" json:"remaining"`
}

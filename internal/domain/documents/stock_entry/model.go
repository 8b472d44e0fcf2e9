// Package stock_entry provides the StockEntry document: goods received
// from a supplier into one warehouse.
package stock_entry

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// DocumentType tags register movements and ledger lines.
const DocumentType = "stock_entry"

// StockEntry represents a goods receipt document.
// Numbers follow ENT-STORECODE-00001 with a per-store counter.
type StockEntry struct {
	entity.Document

	// SupplierID is the goods source
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// WarehouseID receives every item of the document
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// AccountID optionally names the account paying the purchase;
	// when nil the store's default account is used, when none exists
	// the purchase is recorded with no balance effect
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	// TotalAmount is the sum of item totals
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part: received goods
	Items []Item `db:"-" json:"items"`
}

// Item is one received product line. A product appears at most once
// per entry.
type Item struct {
	ID      id.ID `db:"id" json:"id"`
	EntryID id.ID `db:"entry_id" json:"entryId"`
	LineNo  int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity in whole units
	Quantity int64 `db:"quantity" json:"quantity"`

	// PurchasePrice per unit; defaults to the product's purchase price
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// TotalPrice = Quantity * PurchasePrice
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`
}

// NewStockEntry creates a goods receipt for a store.
func NewStockEntry(storeID, createdBy, supplierID, warehouseID id.ID) *StockEntry {
	return &StockEntry{
		Document:    entity.NewDocument(storeID, createdBy),
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		TotalAmount: types.Zero(),
		Items:       make([]Item, 0),
	}
}

// AddItem appends a received product line and recalculates totals.
func (e *StockEntry) AddItem(productID id.ID, quantity int64, purchasePrice types.Money) *Item {
	item := Item{
		ID:            id.New(),
		EntryID:       e.ID,
		LineNo:        len(e.Items) + 1,
		ProductID:     productID,
		Quantity:      quantity,
		PurchasePrice: types.RoundMoney(purchasePrice),
		TotalPrice:    types.MulQty(purchasePrice, quantity),
	}
	e.Items = append(e.Items, item)
	e.RecalculateTotals()
	return &e.Items[len(e.Items)-1]
}

// RecalculateTotals recomputes the header total from the items.
func (e *StockEntry) RecalculateTotals() {
	total := types.Zero()
	for _, item := range e.Items {
		total = total.Add(item.TotalPrice)
	}
	e.TotalAmount = types.RoundMoney(total)
}

// Validate implements entity.Validatable.
func (e *StockEntry) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(e.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplier_id")
	}
	if id.IsNil(e.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouse_id")
	}
	if len(e.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	seen := make(map[id.ID]bool, len(e.Items))
	for i, item := range e.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("line_no", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("line_no", i+1)
		}
		if item.PurchasePrice.IsNegative() {
			return apperror.NewValidation("purchase price cannot be negative").
				WithDetail("field", "items").
				WithDetail("line_no", i+1)
		}
		if seen[item.ProductID] {
			return apperror.NewValidation("product appears more than once").
				WithDetail("field", "items").
				WithDetail("product_id", item.ProductID.String())
		}
		seen[item.ProductID] = true
	}

	return nil
}

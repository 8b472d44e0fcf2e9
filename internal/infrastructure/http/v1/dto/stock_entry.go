package dto

import (
	"time"

	"gestock/internal/core/types"
	"gestock/internal/domain/documents/stock_entry"
)

// StockEntryItemRequest is one received product line.
type StockEntryItemRequest struct {
	ProductID     string       `json:"productId" binding:"required"`
	Quantity      int64        `json:"quantity" binding:"required,gt=0"`
	PurchasePrice *types.Money `json:"purchasePrice"`
}

// ToInput converts the line into the service payload.
func (r *StockEntryItemRequest) ToInput() (stock_entry.ItemInput, error) {
	productID, err := ParseID("productId", r.ProductID)
	if err != nil {
		return stock_entry.ItemInput{}, err
	}
	return stock_entry.ItemInput{
		ProductID:     productID,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
	}, nil
}

// CreateStockEntryRequest records a goods receipt.
type CreateStockEntryRequest struct {
	StoreID     string                  `json:"storeId"`
	SupplierID  string                  `json:"supplierId" binding:"required"`
	WarehouseID string                  `json:"warehouseId" binding:"required"`
	AccountID   *string                 `json:"accountId"`
	Notes       *string                 `json:"notes"`
	Date        *time.Time              `json:"date"`
	Items       []StockEntryItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToInput converts the request into the service payload.
func (r *CreateStockEntryRequest) ToInput() (stock_entry.CreateInput, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return stock_entry.CreateInput{}, err
	}
	supplierID, err := ParseID("supplierId", r.SupplierID)
	if err != nil {
		return stock_entry.CreateInput{}, err
	}
	warehouseID, err := ParseID("warehouseId", r.WarehouseID)
	if err != nil {
		return stock_entry.CreateInput{}, err
	}
	accountID, err := ParseOptionalID("accountId", r.AccountID)
	if err != nil {
		return stock_entry.CreateInput{}, err
	}

	items := make([]stock_entry.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		in, err := item.ToInput()
		if err != nil {
			return stock_entry.CreateInput{}, err
		}
		items = append(items, in)
	}

	return stock_entry.CreateInput{
		StoreID:     storeID,
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		AccountID:   accountID,
		Notes:       r.Notes,
		Date:        r.Date,
		Items:       items,
	}, nil
}

package dto

import (
	"time"

	"gestock/internal/domain/documents/stock_transfer"
)

// StockTransferItemRequest is one moved product line.
type StockTransferItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// ToInput converts the line into the service payload.
func (r *StockTransferItemRequest) ToInput() (stock_transfer.ItemInput, error) {
	productID, err := ParseID("productId", r.ProductID)
	if err != nil {
		return stock_transfer.ItemInput{}, err
	}
	return stock_transfer.ItemInput{
		ProductID: productID,
		Quantity:  r.Quantity,
	}, nil
}

// CreateStockTransferRequest records a pending warehouse transfer.
type CreateStockTransferRequest struct {
	StoreID         string                     `json:"storeId"`
	FromWarehouseID string                     `json:"fromWarehouseId" binding:"required"`
	ToWarehouseID   string                     `json:"toWarehouseId" binding:"required"`
	Notes           *string                    `json:"notes"`
	Date            *time.Time                 `json:"date"`
	Items           []StockTransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToInput converts the request into the service payload.
func (r *CreateStockTransferRequest) ToInput() (stock_transfer.CreateInput, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return stock_transfer.CreateInput{}, err
	}
	fromID, err := ParseID("fromWarehouseId", r.FromWarehouseID)
	if err != nil {
		return stock_transfer.CreateInput{}, err
	}
	toID, err := ParseID("toWarehouseId", r.ToWarehouseID)
	if err != nil {
		return stock_transfer.CreateInput{}, err
	}

	items := make([]stock_transfer.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		in, err := item.ToInput()
		if err != nil {
			return stock_transfer.CreateInput{}, err
		}
		items = append(items, in)
	}

	return stock_transfer.CreateInput{
		StoreID:         storeID,
		FromWarehouseID: fromID,
		ToWarehouseID:   toID,
		Notes:           r.Notes,
		Date:            r.Date,
		Items:           items,
	}, nil
}

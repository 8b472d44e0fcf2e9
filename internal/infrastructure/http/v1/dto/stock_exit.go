package dto

import (
	"time"

	"gestock/internal/core/types"
	"gestock/internal/domain/documents/stock_exit"
)

// StockExitItemRequest is one shipped product line.
type StockExitItemRequest struct {
	ProductID string       `json:"productId" binding:"required"`
	Quantity  int64        `json:"quantity" binding:"required,gt=0"`
	SalePrice *types.Money `json:"salePrice"`
}

// ToInput converts the line into the service payload.
func (r *StockExitItemRequest) ToInput() (stock_exit.ItemInput, error) {
	productID, err := ParseID("productId", r.ProductID)
	if err != nil {
		return stock_exit.ItemInput{}, err
	}
	return stock_exit.ItemInput{
		ProductID: productID,
		Quantity:  r.Quantity,
		SalePrice: r.SalePrice,
	}, nil
}

// CreateStockExitRequest records a goods issue (sale). CustomerID names
// a registered customer; CustomerName covers walk-in buyers.
type CreateStockExitRequest struct {
	StoreID      string                 `json:"storeId"`
	WarehouseID  string                 `json:"warehouseId" binding:"required"`
	CustomerID   *string                `json:"customerId"`
	CustomerName *string                `json:"customerName"`
	AccountID    *string                `json:"accountId"`
	PaidAmount   *types.Money           `json:"paidAmount"`
	Notes        *string                `json:"notes"`
	Date         *time.Time             `json:"date"`
	Items        []StockExitItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToInput converts the request into the service payload.
func (r *CreateStockExitRequest) ToInput() (stock_exit.CreateInput, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return stock_exit.CreateInput{}, err
	}
	warehouseID, err := ParseID("warehouseId", r.WarehouseID)
	if err != nil {
		return stock_exit.CreateInput{}, err
	}
	customerID, err := ParseOptionalID("customerId", r.CustomerID)
	if err != nil {
		return stock_exit.CreateInput{}, err
	}
	accountID, err := ParseOptionalID("accountId", r.AccountID)
	if err != nil {
		return stock_exit.CreateInput{}, err
	}

	items := make([]stock_exit.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		in, err := item.ToInput()
		if err != nil {
			return stock_exit.CreateInput{}, err
		}
		items = append(items, in)
	}

	return stock_exit.CreateInput{
		StoreID:      storeID,
		WarehouseID:  warehouseID,
		CustomerID:   customerID,
		CustomerName: r.CustomerName,
		AccountID:    accountID,
		PaidAmount:   r.PaidAmount,
		Notes:        r.Notes,
		Date:         r.Date,
		Items:        items,
	}, nil
}

// AddPaymentRequest records a payment against an exit's remainder.
type AddPaymentRequest struct {
	Amount types.Money `json:"amount" binding:"required"`
}

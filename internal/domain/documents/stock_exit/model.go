// Package stock_exit provides the StockExit document: goods sold out of
// one warehouse to a registered customer or a walk-in buyer.
package stock_exit

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// DocumentType tags register movements and ledger lines.
const DocumentType = "stock_exit"

// PaymentStatus derives from paid vs total, never set directly.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "non_paye"
	PaymentPartial PaymentStatus = "partiel"
	PaymentPaid    PaymentStatus = "paye"
)

// StockExit represents a goods issue (sale) document.
// Numbers follow SOR-STORECODE-00001 with a per-store counter.
type StockExit struct {
	entity.Document

	// CustomerID names a registered customer; CustomerName carries the
	// free-form name of a walk-in buyer. Both may be empty.
	CustomerID   *id.ID  `db:"customer_id" json:"customerId,omitempty"`
	CustomerName *string `db:"customer_name" json:"customerName,omitempty"`

	// WarehouseID ships every item of the document
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// AccountID optionally names the account receiving the sale
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`

	// RemainingAmount = TotalAmount - PaidAmount, kept in sync on every
	// mutation; for a registered customer it feeds the debt balance
	RemainingAmount types.Money `db:"remaining_amount" json:"remainingAmount"`

	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`

	// Table part: shipped goods
	Items []Item `db:"-" json:"items"`
}

// Item is one shipped product line. A product appears at most once per
// exit.
type Item struct {
	ID     id.ID `db:"id" json:"id"`
	ExitID id.ID `db:"exit_id" json:"exitId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// SalePrice per unit; a zero or missing price falls back to the
	// product's sale price
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	TotalPrice types.Money `db:"total_price" json:"totalPrice"`
}

// NewStockExit creates a goods issue for a store.
func NewStockExit(storeID, createdBy, warehouseID id.ID) *StockExit {
	return &StockExit{
		Document:        entity.NewDocument(storeID, createdBy),
		WarehouseID:     warehouseID,
		TotalAmount:     types.Zero(),
		PaidAmount:      types.Zero(),
		RemainingAmount: types.Zero(),
		PaymentStatus:   PaymentUnpaid,
		Items:           make([]Item, 0),
	}
}

// AddItem appends a shipped product line and recalculates totals.
func (e *StockExit) AddItem(productID id.ID, quantity int64, salePrice types.Money) *Item {
	item := Item{
		ID:         id.New(),
		ExitID:     e.ID,
		LineNo:     len(e.Items) + 1,
		ProductID:  productID,
		Quantity:   quantity,
		SalePrice:  types.RoundMoney(salePrice),
		TotalPrice: types.MulQty(salePrice, quantity),
	}
	e.Items = append(e.Items, item)
	e.RecalculateTotals()
	return &e.Items[len(e.Items)-1]
}

// RecalculateTotals recomputes the header total, the remaining amount
// and the payment status from the items and the paid amount.
func (e *StockExit) RecalculateTotals() {
	total := types.Zero()
	for _, item := range e.Items {
		total = total.Add(item.TotalPrice)
	}
	e.TotalAmount = types.RoundMoney(total)
	e.syncPayment()
}

// AddPayment records a partial or final payment. Overpaying and
// non-positive amounts are rejected with no state change.
func (e *StockExit) AddPayment(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewInvalidPayment("payment amount must be positive").
			WithDetail("amount", amount.String())
	}
	if e.PaidAmount.Add(amount).GreaterThan(e.TotalAmount) {
		return apperror.NewInvalidPayment("payment exceeds remaining amount").
			WithDetail("amount", amount.String()).
			WithDetail("remaining", e.RemainingAmount.String())
	}
	e.PaidAmount = types.RoundMoney(e.PaidAmount.Add(amount))
	e.syncPayment()
	return nil
}

// IsFullyPaid reports whether nothing remains to pay.
func (e *StockExit) IsFullyPaid() bool {
	return !e.RemainingAmount.IsPositive()
}

func (e *StockExit) syncPayment() {
	e.RemainingAmount = types.RoundMoney(e.TotalAmount.Sub(e.PaidAmount))
	switch {
	case !e.PaidAmount.IsPositive():
		e.PaymentStatus = PaymentUnpaid
	case !e.RemainingAmount.IsPositive():
		e.PaymentStatus = PaymentPaid
	default:
		e.PaymentStatus = PaymentPartial
	}
}

// Validate implements entity.Validatable.
func (e *StockExit) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(e.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouse_id")
	}
	if len(e.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	if e.PaidAmount.IsNegative() {
		return apperror.NewValidation("paid amount cannot be negative").
			WithDetail("field", "paid_amount")
	}
	if e.PaidAmount.GreaterThan(e.TotalAmount) {
		return apperror.NewInvalidPayment("paid amount exceeds total").
			WithDetail("paid", e.PaidAmount.String()).
			WithDetail("total", e.TotalAmount.String())
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
		if item.SalePrice.IsNegative() {
			return apperror.NewValidation("sale price cannot be negative").
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

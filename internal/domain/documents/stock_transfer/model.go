// Package stock_transfer provides the StockTransfer document: goods
// moved between two warehouses of one store.
//
// A transfer is created pending and touches no stock until completion.
// Completing it moves every item atomically; once completed or
// cancelled the document and its items are frozen.
package stock_transfer

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
)

// DocumentType tags register movements.
const DocumentType = "stock_transfer"

// Status is the transfer lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StockTransfer represents an inter-warehouse move document.
// Numbers follow TRF-STORECODE-00001 with a per-store counter, the
// store being the one owning both warehouses.
type StockTransfer struct {
	entity.Document

	FromWarehouseID id.ID `db:"from_warehouse_id" json:"fromWarehouseId"`
	ToWarehouseID   id.ID `db:"to_warehouse_id" json:"toWarehouseId"`

	Status Status `db:"status" json:"status"`

	// CompletedAt is stamped when the transfer completes; nil while
	// pending or cancelled.
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`

	// Table part: goods to move
	Items []Item `db:"-" json:"items"`
}

// Item is one moved product line. A product appears at most once per
// transfer.
type Item struct {
	ID         id.ID `db:"id" json:"id"`
	TransferID id.ID `db:"transfer_id" json:"transferId"`
	LineNo     int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	Quantity  int64 `db:"quantity" json:"quantity"`
}

// NewStockTransfer creates a pending transfer for a store.
func NewStockTransfer(storeID, createdBy, fromWarehouseID, toWarehouseID id.ID) *StockTransfer {
	return &StockTransfer{
		Document:        entity.NewDocument(storeID, createdBy),
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		Status:          StatusPending,
		Items:           make([]Item, 0),
	}
}

// AddItem appends a product line. Fails once the transfer left pending.
func (t *StockTransfer) AddItem(productID id.ID, quantity int64) (*Item, error) {
	if t.Status != StatusPending {
		return nil, apperror.NewTransferLocked(t.ID.String(), string(t.Status))
	}
	item := Item{
		ID:         id.New(),
		TransferID: t.ID,
		LineNo:     len(t.Items) + 1,
		ProductID:  productID,
		Quantity:   quantity,
	}
	t.Items = append(t.Items, item)
	return &t.Items[len(t.Items)-1], nil
}

// Complete marks the transfer done. Only pending transfers complete.
func (t *StockTransfer) Complete() error {
	if t.Status != StatusPending {
		return apperror.NewInvalidState("stock transfer", string(t.Status), string(StatusCompleted))
	}
	t.Status = StatusCompleted
	now := time.Now().UTC()
	t.CompletedAt = &now
	return nil
}

// Cancel abandons a pending transfer. No stock ever moved, so there is
// nothing to undo.
func (t *StockTransfer) Cancel() error {
	if t.Status != StatusPending {
		return apperror.NewInvalidState("stock transfer", string(t.Status), string(StatusCancelled))
	}
	t.Status = StatusCancelled
	return nil
}

// Validate implements entity.Validatable.
func (t *StockTransfer) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.FromWarehouseID) || id.IsNil(t.ToWarehouseID) {
		return apperror.NewValidation("both warehouses are required")
	}
	if t.FromWarehouseID == t.ToWarehouseID {
		return apperror.NewSameWarehouse(t.FromWarehouseID.String())
	}
	if len(t.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	seen := make(map[id.ID]bool, len(t.Items))
	for i, item := range t.Items {
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
		if seen[item.ProductID] {
			return apperror.NewValidation("product appears more than once").
				WithDetail("field", "items").
				WithDetail("product_id", item.ProductID.String())
		}
		seen[item.ProductID] = true
	}

	return nil
}

// Package stock provides the stock register: the authoritative
// product-by-warehouse quantity matrix plus the movement journal
// every document writes through.
package stock

import (
	"time"

	"gestock/internal/core/id"
)

// Level is one cell of the quantity matrix.
// A missing row reads as zero; rows are created on first receipt.
type Level struct {
	ProductID   id.ID     `db:"product_id" json:"productId"`
	WarehouseID id.ID     `db:"warehouse_id" json:"warehouseId"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}

// Direction tags a movement as inbound or outbound for its warehouse.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Movement is one journal line. The journal is append-only: the sum of
// signed movements for a cell always equals the level of that cell.
type Movement struct {
	ID          id.ID     `db:"id" json:"id"`
	StoreID     id.ID     `db:"store_id" json:"storeId"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	WarehouseID id.ID     `db:"warehouse_id" json:"warehouseId"`
	Direction   Direction `db:"direction" json:"direction"`
	Quantity    int64     `db:"quantity" json:"quantity"`

	// DocumentID/DocumentType identify the recorder document
	DocumentID   id.ID  `db:"document_id" json:"documentId"`
	DocumentType string `db:"document_type" json:"documentType"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Recorder identifies the document a movement belongs to.
type Recorder struct {
	StoreID      id.ID
	DocumentID   id.ID
	DocumentType string
}

// LevelFilter narrows level listings.
type LevelFilter struct {
	ExcludeZero bool
	ProductIDs  []id.ID
}

// MovementFilter narrows movement history queries.
type MovementFilter struct {
	WarehouseID *id.ID
	Direction   *Direction
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

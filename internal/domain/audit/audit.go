// Package audit defines the audit trail written on document lifecycle
// actions and payments.
package audit

import (
	"context"
	"time"

	"gestock/internal/core/id"
)

// Action names what happened to the entity.
type Action string

const (
	ActionCreated      Action = "created"
	ActionUpdated      Action = "updated"
	ActionCompleted    Action = "completed"
	ActionCancelled    Action = "cancelled"
	ActionPaymentAdded Action = "payment_added"
	ActionDebtPaid     Action = "debt_paid"
)

// Entry is one audit record.
type Entry struct {
	ID         id.ID     `db:"id" json:"id"`
	StoreID    id.ID     `db:"store_id" json:"storeId"`
	UserID     id.ID     `db:"user_id" json:"userId"`
	Action     Action    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entityType"`
	EntityID   id.ID     `db:"entity_id" json:"entityId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	// Changes is an arbitrary JSON-serializable snapshot of what changed.
	Changes any `db:"-" json:"changes,omitempty"`
}

// NewEntry builds an Entry stamped now.
func NewEntry(storeID, userID id.ID, action Action, entityType string, entityID id.ID, changes any) Entry {
	return Entry{
		ID:         id.New(),
		StoreID:    storeID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
		Changes:    changes,
	}
}

// Recorder persists audit entries. Recording happens inside the business
// transaction; a failed business action leaves no trail.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Filter narrows audit queries.
type Filter struct {
	StoreID    *id.ID
	EntityType *string
	EntityID   *id.ID
	Limit      int
	Offset     int
}

// Reader queries the audit trail.
type Reader interface {
	List(ctx context.Context, f Filter) ([]Entry, error)
}

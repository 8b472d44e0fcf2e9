// Package transaction provides the financial transaction ledger.
// Transactions are append-only: every account balance equals the signed
// sum of its ledger lines, so corrections are new transactions, never
// edits of old ones.
package transaction

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Type classifies a transaction.
type Type string

const (
	// TypePurchase is spawned by stock entries.
	TypePurchase Type = "purchase"
	// TypeSale is spawned by stock exits.
	TypeSale Type = "sale"
	// TypeService records a paid service.
	TypeService Type = "service"
	// TypeExpense records an operating expense.
	TypeExpense Type = "expense"
	// TypeDebtPayment records a customer paying down debt.
	TypeDebtPayment Type = "debt_payment"
	// TypeTransfer moves money between two accounts of one store.
	TypeTransfer Type = "transfer"
	// TypeAdjustment corrects a balance (opening balances, write-offs).
	TypeAdjustment Type = "adjustment"
)

// Transaction is one ledger line. Numbers follow TRX-YYYYMMDD-0001 with
// a per-day counter.
type Transaction struct {
	entity.Document

	Type Type `db:"type" json:"type"`

	// Amount is always positive; direction comes from the account sides
	Amount types.Money `db:"amount" json:"amount"`

	// FromAccountID is debited, ToAccountID is credited. Either may be
	// nil depending on the type; purchase and sale lines tolerate a
	// missing account and then record the flow with no balance effect.
	FromAccountID *id.ID `db:"from_account_id" json:"fromAccountId,omitempty"`
	ToAccountID   *id.ID `db:"to_account_id" json:"toAccountId,omitempty"`

	// Counterparty references
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	// SourceDocumentID/Type link document-driven lines to their document
	SourceDocumentID   *id.ID  `db:"source_document_id" json:"sourceDocumentId,omitempty"`
	SourceDocumentType *string `db:"source_document_type" json:"sourceDocumentType,omitempty"`

	Description string `db:"description" json:"description"`
}

// New creates a transaction line for a store.
func New(storeID, createdBy id.ID, txType Type, amount types.Money) *Transaction {
	return &Transaction{
		Document: entity.NewDocument(storeID, createdBy),
		Type:     txType,
		Amount:   types.RoundMoney(amount),
	}
}

// WithSource links the transaction to the document that spawned it.
func (t *Transaction) WithSource(docID id.ID, docType string) *Transaction {
	t.SourceDocumentID = &docID
	t.SourceDocumentType = &docType
	return t
}

// Validate implements entity.Validatable interface.
func (t *Transaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if !t.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", t.Amount.String())
	}

	switch t.Type {
	case TypePurchase, TypeSale:
		// Account optional: documents record the flow even when the
		// store has no account configured.
	case TypeService:
		// A service line is a contribution: money comes IN.
		if t.ToAccountID == nil {
			return apperror.NewValidation("to_account is required").
				WithDetail("field", "to_account_id")
		}
	case TypeExpense:
		if t.FromAccountID == nil {
			return apperror.NewValidation("from_account is required").
				WithDetail("field", "from_account_id")
		}
	case TypeDebtPayment:
		if t.ToAccountID == nil {
			return apperror.NewValidation("to_account is required").
				WithDetail("field", "to_account_id")
		}
		if t.CustomerID == nil {
			return apperror.NewValidation("customer is required").
				WithDetail("field", "customer_id")
		}
	case TypeTransfer:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return apperror.NewValidation("transfer requires both accounts")
		}
		if *t.FromAccountID == *t.ToAccountID {
			return apperror.NewValidation("transfer accounts must differ").
				WithDetail("account_id", t.FromAccountID.String())
		}
	case TypeAdjustment:
		if t.FromAccountID == nil && t.ToAccountID == nil {
			return apperror.NewValidation("adjustment requires an account")
		}
	default:
		return apperror.NewValidation("invalid transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}

	return nil
}

// IsManual reports whether the type may be created directly through the
// API. Document-driven types only ever come from their source documents.
func (t Type) IsManual() bool {
	switch t {
	case TypeService, TypeExpense, TypeTransfer, TypeAdjustment:
		return true
	}
	return false
}

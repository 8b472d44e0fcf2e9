package dto

import (
	"time"

	"gestock/internal/core/types"
	"gestock/internal/domain/finance/transaction"
)

// CreateTransactionRequest records a manual ledger line. Document-driven
// types (purchase, sale, debt_payment) are rejected by the service.
type CreateTransactionRequest struct {
	Type          string       `json:"type" binding:"required,oneof=service expense transfer adjustment"`
	StoreID       string       `json:"storeId"`
	Amount        types.Money  `json:"amount" binding:"required"`
	FromAccountID *string      `json:"fromAccountId"`
	ToAccountID   *string      `json:"toAccountId"`
	Description   string       `json:"description"`
	Notes         *string      `json:"notes"`
	Date          *time.Time   `json:"date"`
}

// ToInput converts the request into the service payload.
func (r *CreateTransactionRequest) ToInput() (transaction.CreateInput, error) {
	storeID, err := ParseStoreID(r.StoreID)
	if err != nil {
		return transaction.CreateInput{}, err
	}
	fromID, err := ParseOptionalID("fromAccountId", r.FromAccountID)
	if err != nil {
		return transaction.CreateInput{}, err
	}
	toID, err := ParseOptionalID("toAccountId", r.ToAccountID)
	if err != nil {
		return transaction.CreateInput{}, err
	}

	return transaction.CreateInput{
		Type:          transaction.Type(r.Type),
		StoreID:       storeID,
		Amount:        r.Amount,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Description:   r.Description,
		Notes:         r.Notes,
		Date:          r.Date,
	}, nil
}

// PayDebtRequest records a customer paying down debt into an account.
type PayDebtRequest struct {
	AccountID string      `json:"accountId" binding:"required"`
	Amount    types.Money `json:"amount" binding:"required"`
	Notes     *string     `json:"notes"`
}

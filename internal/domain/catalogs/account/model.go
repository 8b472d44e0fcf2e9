// Package account provides the financial Account catalog.
// Account balances move only through financial transactions; the catalog
// service never edits them directly.
package account

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

// Type classifies an account.
type Type string

const (
	TypeBank Type = "bank"
	TypeCash Type = "cash"
)

// Account represents a money holding of one store.
type Account struct {
	entity.Catalog

	// StoreID is the owning store
	StoreID id.ID `db:"store_id" json:"storeId"`

	// Type is bank or cash
	Type Type `db:"type" json:"type"`

	// Balance is the current amount held
	Balance types.Money `db:"balance" json:"balance"`
}

// NewAccount creates an active Account for a store with zero balance.
func NewAccount(storeID id.ID, name string, accType Type) *Account {
	return &Account{
		Catalog: entity.NewCatalog(name),
		StoreID: storeID,
		Type:    accType,
		Balance: types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Type != TypeBank && a.Type != TypeCash {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	return nil
}

// Debit withdraws amount from the account.
// Fails when the balance cannot cover it: account balances never go negative.
func (a *Account) Debit(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("debit amount must be positive").
			WithDetail("amount", amount.String())
	}
	if a.Balance.LessThan(amount) {
		return apperror.NewInsufficientFunds(a.ID.String(), amount.String(), a.Balance.String())
	}
	a.Balance = types.RoundMoney(a.Balance.Sub(amount))
	return nil
}

// Credit deposits amount into the account.
func (a *Account) Credit(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("credit amount must be positive").
			WithDetail("amount", amount.String())
	}
	a.Balance = types.RoundMoney(a.Balance.Add(amount))
	return nil
}

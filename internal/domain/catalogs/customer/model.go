// Package customer provides the Customer catalog.
// A customer carries a running debt: the sum of unpaid remainders of their
// stock exits, reduced by payments. Debt never goes negative.
package customer

import (
	"context"
	"regexp"

	"gestock/internal/core/apperror"
	"gestock/internal/core/entity"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer of one store.
type Customer struct {
	entity.Catalog

	// StoreID is the owning store
	StoreID id.ID `db:"store_id" json:"storeId"`

	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// Debt is the outstanding amount owed to the store, never negative
	Debt types.Money `db:"debt" json:"debt"`
}

// NewCustomer creates an active Customer for a store with zero debt.
func NewCustomer(storeID id.ID, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(name),
		StoreID: storeID,
		Debt:    types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailPattern.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email").
			WithDetail("value", *c.Email)
	}

	if c.Debt.IsNegative() {
		return apperror.NewValidation("debt cannot be negative").
			WithDetail("field", "debt").
			WithDetail("value", c.Debt.String())
	}

	return nil
}

// AddDebt increases the customer's outstanding debt.
func (c *Customer) AddDebt(amount types.Money) error {
	if amount.IsNegative() {
		return apperror.NewValidation("debt increase cannot be negative").
			WithDetail("amount", amount.String())
	}
	c.Debt = types.RoundMoney(c.Debt.Add(amount))
	return nil
}

// PayDebt reduces the outstanding debt. Paying more than is owed fails.
func (c *Customer) PayDebt(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewInvalidPayment("payment amount must be positive").
			WithDetail("amount", amount.String())
	}
	if amount.GreaterThan(c.Debt) {
		return apperror.NewInvalidPayment("payment exceeds outstanding debt").
			WithDetail("amount", amount.String()).
			WithDetail("debt", c.Debt.String())
	}
	c.Debt = types.RoundMoney(c.Debt.Sub(amount))
	return nil
}

// AdjustDebt applies a signed delta, clamping at zero.
// Used when a stock exit's remaining amount shrinks below what was already
// folded into the debt by an out-of-band correction.
func (c *Customer) AdjustDebt(delta types.Money) {
	next := types.RoundMoney(c.Debt.Add(delta))
	if next.IsNegative() {
		next = types.Zero()
	}
	c.Debt = next
}

// Package types provides common type aliases and monetary helpers.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; amounts are
// rounded to 2 decimal places at aggregate boundaries.
type Money = decimal.Decimal

// MoneyScale is the number of decimal places kept on stored amounts.
const MoneyScale = 2

// NewMoney creates a Money value from a float.
// Prefer NewMoneyFromString for values coming off the wire.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney normalizes an amount to the stored scale.
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// MulQty multiplies a unit amount by an integer quantity, rounded to scale.
// Stock quantities are whole units, so this is the only quantity arithmetic
// monetary code needs.
func MulQty(unit Money, qty int64) Money {
	return RoundMoney(unit.Mul(decimal.NewFromInt(qty)))
}

package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

func TestCustomer_AddDebt(t *testing.T) {
	c := NewCustomer(id.New(), "ACME")

	require.NoError(t, c.AddDebt(types.MustMoney("150.50")))
	assert.True(t, c.Debt.Equal(types.MustMoney("150.50")))

	require.NoError(t, c.AddDebt(types.MustMoney("49.50")))
	assert.True(t, c.Debt.Equal(types.MustMoney("200.00")))

	// Zero is a no-op, not an error.
	require.NoError(t, c.AddDebt(types.Zero()))
	assert.True(t, c.Debt.Equal(types.MustMoney("200.00")))

	err := c.AddDebt(types.MustMoney("-5"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCustomer_PayDebt(t *testing.T) {
	c := NewCustomer(id.New(), "ACME")
	require.NoError(t, c.AddDebt(types.MustMoney("100")))

	require.NoError(t, c.PayDebt(types.MustMoney("40")))
	assert.True(t, c.Debt.Equal(types.MustMoney("60.00")))

	// Paying the exact remainder clears the debt.
	require.NoError(t, c.PayDebt(types.MustMoney("60")))
	assert.True(t, c.Debt.IsZero())

	// Overpayment and non-positive amounts are rejected.
	err := c.PayDebt(types.MustMoney("0.01"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPayment))

	err = c.PayDebt(types.Zero())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPayment))
}

func TestCustomer_AdjustDebt_ClampsAtZero(t *testing.T) {
	c := NewCustomer(id.New(), "ACME")
	require.NoError(t, c.AddDebt(types.MustMoney("30")))

	c.AdjustDebt(types.MustMoney("-50"))
	assert.True(t, c.Debt.IsZero())

	c.AdjustDebt(types.MustMoney("25"))
	assert.True(t, c.Debt.Equal(types.MustMoney("25.00")))
}

func TestCustomer_Validate(t *testing.T) {
	c := NewCustomer(id.New(), "ACME")
	require.NoError(t, c.Validate(context.Background()))

	bad := "not-an-email"
	c.Email = &bad
	err := c.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	good := "acme@example.com"
	c.Email = &good
	require.NoError(t, c.Validate(context.Background()))

	c.Name = ""
	require.Error(t, c.Validate(context.Background()))
}

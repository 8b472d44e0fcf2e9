package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
)

func TestAccount_DebitCredit(t *testing.T) {
	a := NewAccount(id.New(), "Till", TypeCash)

	require.NoError(t, a.Credit(types.MustMoney("500")))
	assert.True(t, a.Balance.Equal(types.MustMoney("500.00")))

	require.NoError(t, a.Debit(types.MustMoney("120.25")))
	assert.True(t, a.Balance.Equal(types.MustMoney("379.75")))

	// Debiting past the balance fails and leaves it untouched.
	err := a.Debit(types.MustMoney("1000"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientFunds))
	assert.True(t, a.Balance.Equal(types.MustMoney("379.75")))

	// Draining to exactly zero is allowed.
	require.NoError(t, a.Debit(types.MustMoney("379.75")))
	assert.True(t, a.Balance.IsZero())
}

func TestAccount_RejectsNonPositiveAmounts(t *testing.T) {
	a := NewAccount(id.New(), "Bank", TypeBank)

	for _, amount := range []types.Money{types.Zero(), types.MustMoney("-1")} {
		err := a.Debit(amount)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

		err = a.Credit(amount)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
}

func TestAccount_Validate(t *testing.T) {
	a := NewAccount(id.New(), "Till", TypeCash)
	require.NoError(t, a.Validate(context.Background()))

	a.Type = "wallet"
	err := a.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

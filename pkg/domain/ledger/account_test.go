package ledger_test

import (
	"testing"

	"github.com/alpenbank/ledger/pkg/currency"
	"github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	acc, err := ledger.New().WithOwner(uuid.New()).WithCurrency(currency.CHF).Build()
	require.NoError(err)
	assert.NotEmpty(t, acc.ID)
	assert.True(t, acc.Balance.IsZero(), "new accounts start at zero")
	assert.Equal(t, currency.CHF, acc.Currency)
}

func TestNewAccount_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ledger.New().WithCurrency(currency.CHF).Build()
	assert.ErrorIs(t, err, ledger.ErrOwnerRequired)

	_, err = ledger.New().WithOwner(uuid.New()).WithCurrency("chf").Build()
	assert.ErrorIs(t, err, ledger.ErrInvalidCurrency)
}

func TestValidateDeposit(t *testing.T) {
	t.Parallel()
	acc := &ledger.Account{Balance: d("100.00"), Currency: currency.CHF}

	assert.NoError(t, acc.ValidateDeposit(d("50"), currency.CHF))
	assert.ErrorIs(t, acc.ValidateDeposit(d("0"), currency.CHF), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, acc.ValidateDeposit(d("-5"), currency.CHF), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, acc.ValidateDeposit(d("50"), currency.EUR), ledger.ErrCurrencyMismatch)
}

func TestValidateWithdraw(t *testing.T) {
	t.Parallel()
	acc := &ledger.Account{Balance: d("100.00"), Currency: currency.CHF}

	t.Run("sufficient funds", func(t *testing.T) {
		assert.NoError(t, acc.ValidateWithdraw(d("100.00"), currency.CHF))
	})
	t.Run("insufficient funds", func(t *testing.T) {
		assert.ErrorIs(t, acc.ValidateWithdraw(d("100.01"), currency.CHF), ledger.ErrInsufficientFunds)
	})
	t.Run("currency mismatch", func(t *testing.T) {
		assert.ErrorIs(t, acc.ValidateWithdraw(d("10"), currency.EUR), ledger.ErrCurrencyMismatch)
	})
}

func TestValidateTransferOut(t *testing.T) {
	t.Parallel()
	acc := &ledger.Account{Balance: d("51.00"), Currency: currency.CHF}

	assert.NoError(t, acc.ValidateTransferOut(d("50.00"), d("1.00"), currency.CHF))
	assert.ErrorIs(t, acc.ValidateTransferOut(d("50.00"), d("1.01"), currency.CHF), ledger.ErrInsufficientFunds)
	assert.ErrorIs(t, acc.ValidateTransferOut(d("50.00"), d("-1.00"), currency.CHF), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, acc.ValidateTransferOut(d("0"), d("1.00"), currency.CHF), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, acc.ValidateTransferOut(d("50.00"), d("1.00"), currency.EUR), ledger.ErrCurrencyMismatch)
}

func TestDebitCredit(t *testing.T) {
	t.Parallel()
	acc := &ledger.Account{Balance: d("10.00"), Currency: currency.CHF}

	acc.Credit(d("2.50"))
	assert.True(t, acc.Balance.Equal(d("12.50")))

	require.NoError(t, acc.Debit(d("12.50")))
	assert.True(t, acc.Balance.IsZero())

	assert.ErrorIs(t, acc.Debit(d("0.01")), ledger.ErrInsufficientFunds)
	assert.True(t, acc.Balance.IsZero(), "failed debit leaves balance untouched")
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want ledger.Kind
	}{
		{"validation", ledger.ErrInvalidAmount, ledger.KindValidation},
		{"state", ledger.ErrInsufficientFunds, ledger.KindState},
		{"transient", ledger.ErrLockTimeout, ledger.KindTransient},
		{"integrity", ledger.ErrLedgerCorrupted, ledger.KindIntegrity},
		{"foreign", assert.AnError, ledger.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.KindOf(tt.err))
		})
	}
}

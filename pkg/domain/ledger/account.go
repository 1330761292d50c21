// Package ledger holds the domain model of the ledger engine: accounts,
// transaction log entries, and the closed error taxonomy. All business
// invariants live here; persistence and transport stay outside.
package ledger

import (
	"time"

	"github.com/alpenbank/ledger/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a balance-bearing ledger row owned by a party and denominated
// in one fixed currency.
//
// Invariants:
//   - Balance is an exact decimal, never a binary float.
//   - Balance never goes negative between operations.
//   - Currency is immutable once the account is created.
//   - Balances are only mutated inside a lock-held atomic unit.
type Account struct {
	ID uuid.UUID
	// Seq is the store-assigned lock ordinal. Multi-account operations
	// acquire row locks in ascending Seq order, and an owner's primary
	// account is the one with the lowest Seq. Both rules depend on Seq
	// being a total order, so it is never reused or reassigned.
	Seq       int64
	OwnerID   uuid.UUID
	Balance   decimal.Decimal
	Currency  currency.Code
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder constructs Account values, validating invariants in Build.
type Builder struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	currency currency.Code
}

// New returns a Builder for a fresh account with a new id and the default
// currency. Balance always starts at zero; hydration from the store goes
// through the repository layer, not the builder.
func New() *Builder {
	return &Builder{
		id:       uuid.New(),
		currency: currency.DefaultCurrency,
	}
}

// WithOwner sets the owning party. Mandatory.
func (b *Builder) WithOwner(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithCurrency sets the account currency. Defaults to currency.DefaultCurrency.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// Build validates and returns the new account with a zero balance.
func (b *Builder) Build() (*Account, error) {
	if !currency.IsValidFormat(string(b.currency)) {
		return nil, ErrInvalidCurrency
	}
	if b.ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	return &Account{
		ID:       b.id,
		OwnerID:  b.ownerID,
		Balance:  decimal.Zero,
		Currency: b.currency,
	}, nil
}

// ErrOwnerRequired is returned when an account is built without an owner.
var ErrOwnerRequired = newErr(KindValidation, "owner is required")

// ValidateDeposit checks the invariants for crediting amount declared in
// code. It must be called on freshly locked values.
func (a *Account) ValidateDeposit(amount decimal.Decimal, code currency.Code) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.Currency != code {
		return ErrCurrencyMismatch
	}
	return nil
}

// ValidateWithdraw checks the invariants for debiting amount declared in
// code, including sufficient funds. It must be called on freshly locked
// values.
func (a *Account) ValidateWithdraw(amount decimal.Decimal, code currency.Code) error {
	if err := a.ValidateDeposit(amount, code); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateTransferOut checks the invariants for the debit side of a
// transfer: positive principal, non-negative fee, matching currency and a
// balance covering principal plus fee. Only the sender's currency is
// checked; the credit side applies whatever principal was declared, which
// mirrors the engine's observable behavior.
func (a *Account) ValidateTransferOut(amount, fee decimal.Decimal, code currency.Code) error {
	if !amount.IsPositive() || fee.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Currency != code {
		return ErrCurrencyMismatch
	}
	if a.Balance.LessThan(amount.Add(fee)) {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit increases the balance by amount.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Debit decreases the balance by amount. The caller validates first; Debit
// still refuses to drive the balance negative.
func (a *Account) Debit(amount decimal.Decimal) error {
	next := a.Balance.Sub(amount)
	if next.IsNegative() {
		return ErrInsufficientFunds
	}
	a.Balance = next
	return nil
}

package ledger

import "errors"

// Kind classifies a ledger failure so callers can branch on the class of
// fault instead of matching message strings.
type Kind uint8

const (
	// KindUnknown marks errors that did not originate in the ledger engine.
	KindUnknown Kind = iota
	// KindValidation marks caller-input faults. Nothing was attempted
	// against the store.
	KindValidation
	// KindState marks business-rule faults detected against current store
	// state, after locks were held. The unit rolled back cleanly.
	KindState
	// KindTransient marks store-side conditions (lock wait timeout,
	// disconnect) where retrying the whole operation may succeed. The
	// engine never retries on its own.
	KindTransient
	// KindIntegrity marks conditions the atomic unit is supposed to make
	// unreachable, such as a log entry without its balance mutation.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindTransient:
		return "transient"
	case KindIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// Error is a ledger failure with a fixed kind. All engine errors are one of
// the sentinel values below, possibly wrapped with context via fmt.Errorf.
type Error struct {
	kind Kind
	msg  string
}

func newErr(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kind returns the failure class of the error.
func (e *Error) Kind() Kind { return e.kind }

var (
	// ErrInvalidAmount is returned when an operation amount is not
	// positive, or a transfer fee is negative.
	ErrInvalidAmount = newErr(KindValidation, "amount must be positive")
	// ErrInvalidCurrency is returned when a declared currency code is not
	// a 3-letter uppercase code.
	ErrInvalidCurrency = newErr(KindValidation, "invalid currency code")
	// ErrCurrencyMismatch is returned when the declared currency differs
	// from the account's stored currency.
	ErrCurrencyMismatch = newErr(KindValidation, "currency does not match account")
	// ErrSameAccountTransfer is returned when both sides of a transfer
	// resolve to the same account.
	ErrSameAccountTransfer = newErr(KindValidation, "cannot transfer to same account")

	// ErrInsufficientFunds is returned when the locked balance cannot
	// cover a withdrawal or a transfer principal plus fee.
	ErrInsufficientFunds = newErr(KindState, "insufficient funds")
	// ErrAccountNotFound is returned when an owner has no ledger account.
	ErrAccountNotFound = newErr(KindState, "account not found")
	// ErrRecipientNotFound is returned when a transfer recipient
	// identifier resolves to no account.
	ErrRecipientNotFound = newErr(KindState, "recipient not found")

	// ErrLockTimeout is returned when the store gave up waiting for a row
	// lock or aborted the unit to break a deadlock. The whole operation
	// may be retried by the caller.
	ErrLockTimeout = newErr(KindTransient, "timed out waiting for account lock")
	// ErrStoreUnavailable is returned when the store connection failed
	// mid-operation.
	ErrStoreUnavailable = newErr(KindTransient, "ledger store unavailable")

	// ErrLedgerCorrupted is returned when committed state contradicts the
	// atomic-unit guarantee. Unreachable under a correct store.
	ErrLedgerCorrupted = newErr(KindIntegrity, "ledger state corrupted")
)

// KindOf reports the failure class of err, traversing wrapped errors.
// Errors that did not originate in the engine report KindUnknown.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.kind
	}
	return KindUnknown
}

package ledger

import (
	"time"

	"github.com/alpenbank/ledger/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType enumerates the kinds of transaction log entries.
type EntryType string

const (
	EntryDeposit    EntryType = "DEPOSIT"
	EntryWithdrawal EntryType = "WITHDRAWAL"
	EntryTransfer   EntryType = "TRANSFER"
)

// Entry is one account's side of one balance-changing operation.
//
// Entries are append-only: once committed they are never updated or
// deleted. A transfer produces exactly two entries, one per account, which
// are never merged. An entry commits atomically with the balance mutation
// it documents; neither exists without the other.
type Entry struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Type      EntryType
	// Amount is the principal, always positive regardless of direction;
	// Type carries the direction.
	Amount   decimal.Decimal
	Currency currency.Code
	// Fee is the retained fee on the sender side of a transfer, zero
	// everywhere else.
	Fee decimal.Decimal
	// Counterparty identifies the other party of a transfer, empty for
	// deposits and withdrawals.
	Counterparty string
	Description  string
	// CreatedAt is assigned by the store at insert.
	CreatedAt time.Time
}

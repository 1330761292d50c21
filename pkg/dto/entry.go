package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryCreate carries one transaction log entry to append. Counterparty is
// nil for deposits and withdrawals.
type EntryCreate struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Type         string
	Amount       decimal.Decimal
	Currency     string
	Fee          decimal.Decimal
	Counterparty *string
	Description  string
}

// EntryRead is a read-optimized snapshot of a committed log entry.
type EntryRead struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Type         string
	Amount       decimal.Decimal
	Currency     string
	Fee          decimal.Decimal
	Counterparty *string
	Description  string
	CreatedAt    time.Time
}

// Package dto defines the flat data shapes exchanged with the persistence
// layer. Repositories accept create DTOs and return read DTOs; domain
// invariants are enforced before a DTO is ever built.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCreate carries the fields needed to insert a new account row.
// Balance always starts at zero and Seq is assigned by the store.
type AccountCreate struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Currency string
}

// AccountRead is a read-optimized snapshot of an account row.
type AccountRead struct {
	ID        uuid.UUID
	Seq       int64
	OwnerID   uuid.UUID
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

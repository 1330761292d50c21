// Package repository declares the persistence contracts the ledger engine
// requires from its store: repositories for accounts and log entries, an
// owner directory, and a unit of work that scopes them to one atomic
// transaction. Implementations live in infra/repository.
package repository

import (
	"context"

	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository reads and mutates account rows.
type AccountRepository interface {
	// Create inserts a new account with a zero balance and returns the
	// stored row, including the store-assigned lock ordinal.
	Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error)

	// Get returns the account without acquiring any lock.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// GetForUpdate returns the account and acquires an exclusive row
	// lock on it, held until the enclosing unit of work ends. Balance
	// and currency checks must use the values it returns, never an
	// earlier unlocked read.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// UpdateBalance sets the account balance inside the current unit.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// EntryRepository appends to and reads the append-only transaction log.
// There is deliberately no update or delete.
type EntryRepository interface {
	Append(ctx context.Context, create dto.EntryCreate) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EntryRead, error)
}

// OwnerDirectory resolves external identifiers to account ids.
type OwnerDirectory interface {
	// FindAccountByOwner returns the owner's primary account id: the
	// account with the lowest lock ordinal when the owner has several.
	FindAccountByOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error)

	// FindAccountByContact resolves a free-form contact identifier
	// (e.g. an email address) to that party's primary account id.
	// Matching is case-insensitive and ignores surrounding whitespace.
	FindAccountByContact(ctx context.Context, contact string) (uuid.UUID, error)
}

// UnitOfWork provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the same store session,
// so everything they touch commits or rolls back together and all row locks
// are released on either exit path.
type UnitOfWork interface {
	// Do runs fn inside one atomic unit: commit when fn returns nil,
	// roll back when it returns an error.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the
	// current unit. Calling it outside Do is an error.
	AccountRepository() (AccountRepository, error)

	// EntryRepository returns the log entry repository bound to the
	// current unit.
	EntryRepository() (EntryRepository, error)

	// OwnerDirectory returns the owner directory bound to the current
	// unit.
	OwnerDirectory() (OwnerDirectory, error)
}

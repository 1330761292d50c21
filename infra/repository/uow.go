// Package repository provides the GORM-backed implementation of the ledger
// store contract: the unit of work plus the account, entry and owner
// repositories in their subpackages.
package repository

import (
	"context"
	"errors"

	accountrepo "github.com/alpenbank/ledger/infra/repository/account"
	entryrepo "github.com/alpenbank/ledger/infra/repository/entry"
	ownerrepo "github.com/alpenbank/ledger/infra/repository/owner"
	"github.com/alpenbank/ledger/pkg/repository"
	"gorm.io/gorm"
)

// ErrNoUnit is returned when a repository is requested outside Do.
var ErrNoUnit = errors.New("repository requested outside a unit of work")

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the same
// database transaction, which is what makes balance mutations and log
// appends commit or roll back together and releases every row lock on
// either exit path.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit-of-work root for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction: commit when fn returns nil,
// rollback otherwise. Driver-level failures surfacing from the transaction
// are mapped to the engine's transient error kinds.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
	return MapStoreError(err)
}

// AccountRepository returns the account repository bound to the current
// transaction.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoUnit
	}
	return accountrepo.New(u.tx), nil
}

// EntryRepository returns the log entry repository bound to the current
// transaction.
func (u *UoW) EntryRepository() (repository.EntryRepository, error) {
	if u.tx == nil {
		return nil, ErrNoUnit
	}
	return entryrepo.New(u.tx), nil
}

// OwnerDirectory returns the owner directory bound to the current
// transaction.
func (u *UoW) OwnerDirectory() (repository.OwnerDirectory, error) {
	if u.tx == nil {
		return nil, ErrNoUnit
	}
	return ownerrepo.New(u.tx), nil
}

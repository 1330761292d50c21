// Package owner implements the owner directory on GORM/Postgres: the
// lookups that turn an owner id or a contact identifier into a primary
// account id.
package owner

import (
	"context"
	"errors"
	"strings"

	"github.com/alpenbank/ledger/infra/repository/account"
	ledger "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type directory struct {
	db *gorm.DB
}

// New creates an owner directory bound to the given session.
func New(db *gorm.DB) repository.OwnerDirectory {
	return &directory{db: db}
}

// FindAccountByOwner returns the owner's primary account: the account with
// the lowest lock ordinal. The ORDER BY is the documented tie-break rule,
// not incidental ordering.
func (d *directory) FindAccountByOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	var row account.Account
	err := d.db.WithContext(ctx).
		Select("id").
		Where("owner_id = ?", ownerID).
		Order("seq ASC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ledger.ErrAccountNotFound
		}
		return uuid.Nil, err
	}
	return row.ID, nil
}

// FindAccountByContact resolves a contact identifier to that party's
// primary account. Matching ignores case and surrounding whitespace; the
// stored contact is matched as-is otherwise.
func (d *directory) FindAccountByContact(ctx context.Context, contact string) (uuid.UUID, error) {
	var row Owner
	err := d.db.WithContext(ctx).
		Select("id").
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(contact)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ledger.ErrAccountNotFound
		}
		return uuid.Nil, err
	}
	return d.FindAccountByOwner(ctx, row.ID)
}

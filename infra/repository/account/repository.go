// Package account implements the account repository on GORM/Postgres.
// GetForUpdate is the row-lock primitive the executor's locking protocol is
// built on: SELECT ... FOR UPDATE, held until the enclosing transaction
// ends.
package account

import (
	"context"
	"errors"

	ledger "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session. Inside a
// unit of work the session is the transaction, so locks taken here live
// until the unit ends.
func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	row := Account{
		ID:       create.ID,
		OwnerID:  create.OwnerID,
		Balance:  decimal.Zero,
		Currency: create.Currency,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapRowToRead(&row), nil
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var row Account
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	return mapRowToRead(&row), nil
}

func (r *repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var row Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	return mapRowToRead(&row), nil
}

func (r *repo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func mapRowToRead(row *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        row.ID,
		Seq:       row.Seq,
		OwnerID:   row.OwnerID,
		Balance:   row.Balance,
		Currency:  row.Currency,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

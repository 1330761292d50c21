// Package entry implements the transaction log repository on GORM/Postgres.
// The log is append-only, so the repository exposes insert and read but no
// update or delete.
package entry

import (
	"context"

	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates an entry repository bound to the given session.
func New(db *gorm.DB) repository.EntryRepository {
	return &repo{db: db}
}

func (r *repo) Append(ctx context.Context, create dto.EntryCreate) error {
	row := Entry{
		ID:           create.ID,
		AccountID:    create.AccountID,
		Type:         create.Type,
		Amount:       create.Amount,
		Currency:     create.Currency,
		Fee:          create.Fee,
		Counterparty: create.Counterparty,
		Description:  create.Description,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EntryRead, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EntryRead, 0, len(rows))
	for i := range rows {
		out = append(out, mapRowToRead(&rows[i]))
	}
	return out, nil
}

func mapRowToRead(row *Entry) *dto.EntryRead {
	return &dto.EntryRead{
		ID:           row.ID,
		AccountID:    row.AccountID,
		Type:         row.Type,
		Amount:       row.Amount,
		Currency:     row.Currency,
		Fee:          row.Fee,
		Counterparty: row.Counterparty,
		Description:  row.Description,
		CreatedAt:    row.CreatedAt,
	}
}

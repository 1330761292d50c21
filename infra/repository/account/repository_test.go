package account

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	ledger "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func accountRows(id, ownerID uuid.UUID, seq int64, balance, code string) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "seq", "owner_id", "balance", "currency", "created_at", "updated_at"},
	).AddRow(id, seq, ownerID, balance, code, time.Now(), time.Now())
}

func TestAccountRepository_GetForUpdate_LocksRow(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "accounts" WHERE id = (.+) FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(accountRows(id, ownerID, 7, "149.00", "CHF"))

	read, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(err)
	assert.Equal(t, id, read.ID)
	assert.EqualValues(t, 7, read.Seq)
	assert.True(t, read.Balance.Equal(decimal.RequireFromString("149.00")))
	assert.Equal(t, "CHF", read.Currency)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "accounts" WHERE id = (.+)`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateBalance(context.Background(), id, decimal.RequireFromString("50.00"))
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateBalance_MissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateBalance(context.Background(), uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAccountRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := New(db)
	id := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts" (.+) RETURNING "seq"`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(3)))
	mock.ExpectCommit()

	read, err := repo.Create(context.Background(), dto.AccountCreate{
		ID:       id,
		OwnerID:  ownerID,
		Currency: "CHF",
	})
	require.NoError(err)
	assert.EqualValues(t, 3, read.Seq)
	assert.True(t, read.Balance.IsZero())
	require.NoError(mock.ExpectationsWereMet())
}

// Package infra wires the ledger engine to its external collaborators:
// the Postgres connection with an explicit lifecycle and the repository
// implementations underneath infra/repository.
package infra

import (
	"errors"
	"fmt"

	"github.com/alpenbank/ledger/config"
	accountrepo "github.com/alpenbank/ledger/infra/repository/account"
	entryrepo "github.com/alpenbank/ledger/infra/repository/entry"
	ownerrepo "github.com/alpenbank/ledger/infra/repository/owner"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the single process-wide connection pool. The pool
// is constructed once at startup with bounded capacity and passed
// explicitly to whoever needs it; nothing reaches for it as ambient global
// state. Close it through CloseDB at shutdown.
func NewDBConnection(cnf config.DBConfig, appEnv string) (*gorm.DB, error) {
	if cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	return connection, nil
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&ownerrepo.Owner{},
		&accountrepo.Account{},
		&entryrepo.Entry{},
	); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

// CloseDB tears the pool down at shutdown.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

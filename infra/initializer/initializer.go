// Package initializer builds the dependency graph: logger, database pool,
// unit of work and the ledger service, in that order.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/alpenbank/ledger/config"
	"github.com/alpenbank/ledger/infra"
	infrarepo "github.com/alpenbank/ledger/infra/repository"
	"github.com/alpenbank/ledger/pkg/repository"
	ledgersvc "github.com/alpenbank/ledger/pkg/service/ledger"
	"gorm.io/gorm"
)

// Deps holds the wired dependencies of the running process.
type Deps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *gorm.DB
	Uow    repository.UnitOfWork
	Ledger *ledgersvc.Service
}

// InitializeDependencies wires everything the server needs. The database
// pool it opens is owned by the caller: close it with infra.CloseDB at
// shutdown.
func InitializeDependencies(cfg *config.AppConfig) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}

	uow := infrarepo.NewUoW(db)
	return &Deps{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Uow:    uow,
		Ledger: ledgersvc.NewService(uow, logger),
	}, nil
}

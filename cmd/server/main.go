package main

import (
	"fmt"
	"log/slog"

	"github.com/alpenbank/ledger/config"
	"github.com/alpenbank/ledger/infra"
	"github.com/alpenbank/ledger/infra/initializer"
	"github.com/alpenbank/ledger/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(logger, ".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := infra.CloseDB(deps.DB); err != nil {
			deps.Logger.Error("closing database pool", "error", err)
		}
	}()

	app := webapi.SetupApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}

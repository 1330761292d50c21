// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig bounds the process-wide connection pool.
type DBConfig struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

type ServerConfig struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type LogConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

type AppConfig struct {
	Env       string          `envconfig:"APP_ENV" default:"development"`
	Server    ServerConfig    `envconfig:"SERVER"`
	DB        DBConfig        `envconfig:"DATABASE"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Log       LogConfig       `envconfig:"LOG"`
}

// Load reads configuration from the given .env file (if present) and the
// process environment, and reports the result once.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"db_max_open_conns", cfg.DB.MaxOpenConns,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

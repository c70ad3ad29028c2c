package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DBBackend     string `env:"DB_BACKEND" envDefault:"sqlite"`
	DBPath        string `env:"DB_PATH" envDefault:"./signworks.db"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	SeedDemo      bool   `env:"SEED_DEMO" envDefault:"false"`
	BackupDir     string `env:"BACKUP_DIR" envDefault:"./backups"`
}

// Load reads environment variables and returns a populated Config.
// A local .env file is loaded best-effort first; production should use
// real env injection.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.DBBackend {
	case "sqlite":
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown DB_BACKEND %q", cfg.DBBackend)
	}

	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = filepath.Join("migrations", cfg.DBBackend)
	}

	return &cfg, nil
}

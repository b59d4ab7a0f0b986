package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
)

type Config struct {
	Addr            string
	DatabaseDSN     string
	SessionLifetime time.Duration
	BcryptCost      int
}

// Load reads configuration from the environment, with a local .env file as
// an optional source. Missing keys fall back to development defaults.
func Load() (*Config, error) {
	// Absence of a .env file is fine, the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getEnv("WEBLOG_ADDR", ":3000"),
		DatabaseDSN:     getEnv("WEBLOG_DB_DSN", "file:weblog.db?_foreign_keys=on"),
		SessionLifetime: 12 * time.Hour,
		BcryptCost:      12,
	}

	if v := os.Getenv("WEBLOG_SESSION_LIFETIME"); v != "" {
		lifetime, err := time.ParseDuration(v)
		if err != nil {
			return nil, xerrors.Newf("invalid WEBLOG_SESSION_LIFETIME: %w", err)
		}
		cfg.SessionLifetime = lifetime
	}

	if v := os.Getenv("WEBLOG_BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, xerrors.Newf("invalid WEBLOG_BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

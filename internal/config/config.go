// Package config resolves runtime settings from the environment, with a
// best-effort .env load for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the app needs at startup.
type Config struct {
	APIURL  string `env:"FOLIO_API_URL" envDefault:"https://api.folio.dev"`
	Token   string `env:"FOLIO_TOKEN"`
	DataDir string `env:"FOLIO_DATA_DIR"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error. DataDir falls back to ~/.folio.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".folio")
	}
	return cfg, nil
}

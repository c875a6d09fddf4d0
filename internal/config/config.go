package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Slate"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		// Dir holds the local cache slots (bills.json, profile.json).
		Dir string `envconfig:"DATA_DIR" default:"./data"`
		// DBPath is the SQLite file backing the remote store.
		DBPath string `envconfig:"DB_PATH" default:"./data/slate.db"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	ChunkCacheMemory = "memory"
	ChunkCacheStore  = "store"
	ChunkCacheOff    = "off"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the server configuration, read from CAMPAIGNMAP_* variables.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":3001"`
	Store          string        `env:"STORE" envDefault:"memory"`
	DBDSN          string        `env:"DB_DSN"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"campaignmap.db"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	TeleportBound  bool          `env:"TELEPORT_BOUNDED" envDefault:"false"`
	StrictHistory  bool          `env:"MOVEMENT_HISTORY_STRICT" envDefault:"false"`
	ChunkCache     string        `env:"MAP_CHUNK_CACHE" envDefault:"memory"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	OTelEndpoint   string        `env:"OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: "CAMPAIGNMAP_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the server configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.ChunkCache = strings.ToLower(strings.TrimSpace(cfg.ChunkCache))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("%w: CAMPAIGNMAP_DB_DSN is required for the postgres store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	switch c.ChunkCache {
	case ChunkCacheMemory, ChunkCacheStore, ChunkCacheOff:
	default:
		return fmt.Errorf("%w: unknown chunk cache %q", ErrInvalidConfig, c.ChunkCache)
	}
	if c.ChunkCache == ChunkCacheStore && c.Store == StoreMemory {
		return fmt.Errorf("%w: chunk cache %q needs a persistent store", ErrInvalidConfig, c.ChunkCache)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidConfig)
	}
	return nil
}

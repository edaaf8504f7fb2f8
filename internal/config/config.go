// Package config loads dashboard configuration from the environment,
// with an optional .env file for development setups.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/store"
)

// Config is the unified dashboard configuration.
type Config struct {
	// Store
	DBPath string
	Table  string

	// Server
	Listen string

	// Auth: a single local credential pair. AuthPassHash (bcrypt) wins
	// over the plain AuthPass when both are set.
	AuthUser     string
	AuthPass     string
	AuthPassHash string
	SessionTTL   time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Defaults mirroring the original deployment: log.db next to the binary,
// admin/admin123 until overridden.
const (
	defaultDBPath     = "log.db"
	defaultTable      = "system_log"
	defaultListen     = ":7655"
	defaultAuthUser   = "admin"
	defaultAuthPass   = "admin123"
	defaultSessionTTL = 24 * time.Hour
)

// Load reads configuration from a .env file (if present) and the
// environment, applies defaults, and validates. It is the only place a
// configuration problem is fatal.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	cfg := &Config{
		DBPath:       envOr("SYSDASH_DB_PATH", defaultDBPath),
		Table:        envOr("SYSDASH_TABLE", defaultTable),
		Listen:       envOr("SYSDASH_LISTEN", defaultListen),
		AuthUser:     envOr("SYSDASH_AUTH_USER", defaultAuthUser),
		AuthPass:     envOr("SYSDASH_AUTH_PASS", defaultAuthPass),
		AuthPassHash: os.Getenv("SYSDASH_AUTH_PASS_HASH"),
		SessionTTL:   defaultSessionTTL,
		LogLevel:     envOr("LOG_LEVEL", "info"),
		LogFormat:    envOr("LOG_FORMAT", "auto"),
	}

	if ttl := os.Getenv("SYSDASH_SESSION_TTL"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		} else {
			log.Warn().Str("value", ttl).Msg("Invalid SYSDASH_SESSION_TTL (hours); using default")
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !store.ValidTableName(c.Table) {
		return fmt.Errorf("invalid table name %q", c.Table)
	}
	if c.AuthUser == "" {
		return fmt.Errorf("auth user must not be empty")
	}
	if c.AuthPass == "" && c.AuthPassHash == "" {
		return fmt.Errorf("one of SYSDASH_AUTH_PASS or SYSDASH_AUTH_PASS_HASH must be set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

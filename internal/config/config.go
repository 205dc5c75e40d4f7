package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Identity mode constants
const (
	IdentityModeStore = "store"
	IdentityModeJWT   = "jwt"
)

// Config is the server configuration, populated from the environment.
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the profile store backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// IdentityMode selects how join tokens resolve ("store" or "jwt")
	IdentityMode string `env:"IDENTITY_MODE" envDefault:"store"`
	JWTSecret    string `env:"JWT_SECRET"`

	GameDuration    time.Duration `env:"GAME_DURATION" envDefault:"60s"`
	DisconnectGrace time.Duration `env:"DISCONNECT_GRACE" envDefault:"2s"`

	// AllowedOrigins restricts websocket upgrades; empty allows any origin
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory' or 'redis'", c.StorageType)
	}

	switch c.IdentityMode {
	case IdentityModeStore:
	case IdentityModeJWT:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET required when IDENTITY_MODE=jwt")
		}
	default:
		return fmt.Errorf("invalid IDENTITY_MODE %q: must be 'store' or 'jwt'", c.IdentityMode)
	}

	if c.GameDuration <= 0 {
		return errors.New("GAME_DURATION must be positive")
	}
	if c.DisconnectGrace < 0 {
		return errors.New("DISCONNECT_GRACE must not be negative")
	}

	return nil
}

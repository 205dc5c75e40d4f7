package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ghostduel/server/internal/config"
	"github.com/ghostduel/server/internal/dependencies/clock"
	"github.com/ghostduel/server/internal/dependencies/random"
	"github.com/ghostduel/server/internal/services/arena"
	"github.com/ghostduel/server/internal/services/identity"
	"github.com/ghostduel/server/internal/storage"
	"github.com/ghostduel/server/internal/storage/memory"
	redisstorage "github.com/ghostduel/server/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage backing the profile store; nil in jwt mode
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// IdentityService mints and resolves guest profiles; nil in jwt mode
	IdentityService *identity.Service

	// Resolver is whichever token resolver the configured mode selected
	Resolver identity.Resolver

	Coordinator *arena.Coordinator
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	app := &App{
		Clock:  clk,
		Random: rnd,
	}

	switch cfg.IdentityMode {
	case config.IdentityModeStore:
		store, err := newStorage(cfg)
		if err != nil {
			return nil, err
		}
		app.Storage = store
		app.IdentityService = identity.New(store, rnd, clk, logger)
		app.Resolver = app.IdentityService
	case config.IdentityModeJWT:
		app.Resolver = identity.NewJWTResolver([]byte(cfg.JWTSecret))
	default:
		return nil, errors.New("invalid IdentityMode: must be 'store' or 'jwt'")
	}

	app.Coordinator = arena.NewCoordinator(app.Resolver, clk, arena.Config{
		GameDuration:    cfg.GameDuration,
		DisconnectGrace: cfg.DisconnectGrace,
	}, logger)

	return app, nil
}

func newStorage(cfg config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		return redisstorage.New(redisCfg)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}

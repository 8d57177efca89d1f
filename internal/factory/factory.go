package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mossvale/mossvale/internal/dependencies/clock"
	"github.com/mossvale/mossvale/internal/dependencies/random"
	"github.com/mossvale/mossvale/internal/game"
	"github.com/mossvale/mossvale/internal/services/auth"
	"github.com/mossvale/mossvale/internal/services/catalog"
	"github.com/mossvale/mossvale/internal/services/inventory"
	"github.com/mossvale/mossvale/internal/services/players"
	"github.com/mossvale/mossvale/internal/services/world"
	"github.com/mossvale/mossvale/internal/storage"
	"github.com/mossvale/mossvale/internal/storage/memory"
	redisstorage "github.com/mossvale/mossvale/internal/storage/redis"
	"github.com/mossvale/mossvale/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService      *auth.Service
	CatalogService   *catalog.Service
	PlayersService   *players.Service
	InventoryService *inventory.Service

	// Game runtime
	WorldPool  *world.Pool
	Registry   *game.Registry
	Flusher    *game.Flusher
	Hub        *ws.Hub
	Dispatcher *game.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogPath is the path to the item catalog JSON file (optional)
	// If empty, the catalog must be loaded manually
	CatalogPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, logger)

	if cfg.CatalogPath != "" {
		if err := app.CatalogService.LoadFromFile(cfg.CatalogPath); err != nil {
			return nil, err
		}
		if err := app.WorldPool.LoadFromCatalog(app.CatalogService); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(store, clk, authCfg, logger)
	catalogService := catalog.New(logger)
	playersService := players.New(store, clk, rnd, logger)
	inventoryService := inventory.New(store, catalogService, logger)

	// Create the game runtime
	worldPool := world.NewPool(logger)
	registry := game.NewRegistry(clk)
	flusher := game.NewFlusher(store, logger)
	hub := ws.NewHub(logger)
	dispatcher := game.NewDispatcher(registry, worldPool, inventoryService, flusher, hub, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		AuthService:      authService,
		CatalogService:   catalogService,
		PlayersService:   playersService,
		InventoryService: inventoryService,
		WorldPool:        worldPool,
		Registry:         registry,
		Flusher:          flusher,
		Hub:              hub,
		Dispatcher:       dispatcher,
	}
}

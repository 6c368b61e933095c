package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/chessladder/chessladder/internal/dependencies/clock"
	"github.com/chessladder/chessladder/internal/services/rating"
	"github.com/chessladder/chessladder/internal/services/stats"
	"github.com/chessladder/chessladder/internal/storage"
	filestorage "github.com/chessladder/chessladder/internal/storage/file"
	"github.com/chessladder/chessladder/internal/storage/memory"
	"github.com/chessladder/chessladder/internal/storage/postgres"
	redisstorage "github.com/chessladder/chessladder/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeFile     = "file"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Engine *rating.Engine
	Stats  *stats.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// ("memory", "file", "redis", or "postgres"); defaults to "memory"
	StorageType string
	// FileConfig holds file storage settings (required if StorageType is "file")
	FileConfig *filestorage.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN is the Postgres connection string (required if StorageType is "postgres")
	PostgresDSN string
	// Rating holds engine parameters (optional)
	// If zero value, defaults to rating.DefaultConfig()
	Rating rating.Config
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
	case StorageTypeFile:
		fileCfg := filestorage.DefaultConfig()
		if cfg.FileConfig != nil {
			fileCfg = *cfg.FileConfig
		}
		fileStore, err := filestorage.New(fileCfg)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := postgres.New(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file', 'redis', or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default rating config if not provided
	ratingCfg := cfg.Rating
	if ratingCfg.KFactor == 0 {
		ratingCfg = rating.DefaultConfig()
	}

	return newWithDependencies(store, clk, ratingCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, ratingCfg rating.Config, logger *slog.Logger) *App {
	engine := rating.NewEngine(store, clk, ratingCfg, logger)
	statsService := stats.New(store)

	return &App{
		Storage: store,
		Clock:   clk,
		Engine:  engine,
		Stats:   statsService,
	}
}

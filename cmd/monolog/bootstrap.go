package main

import (
	"context"
	"fmt"
	"time"

	"github.com/monolog-ai/monolog/domain/brand"
	"github.com/monolog-ai/monolog/infrastructure/persistence"
	"github.com/monolog-ai/monolog/internal/config"
	"github.com/monolog-ai/monolog/internal/database"
	"github.com/monolog-ai/monolog/internal/log"
)

// Connection pool settings for server-class databases. SQLite keeps the
// driver defaults.
const (
	poolMaxOpen     = 25
	poolMaxIdle     = 5
	poolMaxLifetime = 30 * time.Minute
)

// bootstrap holds everything a command needs to run against the store.
type bootstrap struct {
	cfg    config.AppConfig
	logger *log.Logger
	db     database.Database
	store  *persistence.MetadataStore
	brands brand.Mapping
}

// newBootstrap opens the database, runs migrations, and builds the
// metadata store and brand mapping from the loaded config.
func newBootstrap(ctx context.Context, cfg config.AppConfig) (*bootstrap, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	logger := log.NewLogger(cfg)

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if db.IsPostgres() {
		if err := db.ConfigurePool(poolMaxOpen, poolMaxIdle, poolMaxLifetime); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure connection pool: %w", err)
		}
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	// The metadata table may predate us, created by the embedding store.
	// AutoMigrate adds missing columns but leaves type drift alone, so
	// check the layout before serving.
	if err := persistence.ValidateSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("validate schema: %w", err)
	}

	brands := brand.NewMapping()
	if path := cfg.BrandFile(); path != "" {
		brands, err = brands.LoadOverlay(path)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("load brand file: %w", err)
		}
	}

	return &bootstrap{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  persistence.NewMetadataStore(db, logger.Slog()),
		brands: brands,
	}, nil
}

// Close releases the database connection.
func (b *bootstrap) Close() {
	if err := b.db.Close(); err != nil {
		b.logger.Error("failed to close database", "error", err)
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SnakeCrawl_Go/internal/config"
	"github.com/osse101/SnakeCrawl_Go/internal/database"
	"github.com/osse101/SnakeCrawl_Go/internal/database/postgres"
	"github.com/osse101/SnakeCrawl_Go/internal/store"
)

// InitializeStore opens the configured state store. With postgres the pool is
// migrated before use and returned so the caller can close it; with memory it is nil.
func InitializeStore(ctx context.Context, cfg *config.Config) (store.Store, *pgxpool.Pool, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory, "":
		slog.Info(LogMsgStoreInitialized, "backend", config.StorageMemory)
		return store.NewMemory(), nil, nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString: cfg.GetDBConnString(),
			MaxConns:   cfg.DBMaxConns,
			MaxIdle:    cfg.DBMaxConnIdleTime,
			MaxLife:    cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}

		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
		}

		st, err := postgres.NewStateStore(pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateStateStore, err)
		}

		slog.Info(LogMsgStoreInitialized, "backend", config.StoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)
		return st, pool, nil
	}

	return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageBackend, cfg.StorageBackend)
}

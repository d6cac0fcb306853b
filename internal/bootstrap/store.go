// Package bootstrap turns configuration into wired process dependencies.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/config"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/repository/memory"
	"github.com/maxviazov/lead-service/internal/repository/postgres"
	"github.com/maxviazov/lead-service/internal/repository/sqlite"
)

// OpenStore constructs the store selected by cfg.Store.Driver. SQL stores are
// migrated before they are returned. The caller owns the store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		logger.Info().Str("driver", config.DriverMemory).Msg("using in-memory store")
		return memory.New(logger), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.New(pool, logger), nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

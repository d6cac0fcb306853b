// Package migrations embeds the schema for the SQL-backed lead stores and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Up applies every pending migration for dialect. Supported dialects are
// goose.DialectPostgres and goose.DialectSQLite3.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, logger zerolog.Logger) error {
	dir, err := dirFor(dialect)
	if err != nil {
		return err
	}
	sub, err := fs.Sub(files, dir)
	if err != nil {
		return fmt.Errorf("migrations: open %s: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return fmt.Errorf("migrations: new provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}

	log := logger.With().Str("module", "repository").Str("component", "migrations").Logger()
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("dialect", string(dialect)).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	return nil
}

func dirFor(dialect goose.Dialect) (string, error) {
	switch dialect {
	case goose.DialectPostgres:
		return "postgres", nil
	case goose.DialectSQLite3:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
}

// Package cli implements the leadctl commands. Each command opens the
// configured store directly, so it works without a running server.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/lead-service/internal/bootstrap"
	"github.com/maxviazov/lead-service/internal/config"
	"github.com/maxviazov/lead-service/internal/logger"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/seed"
	"github.com/maxviazov/lead-service/internal/service"
)

// NewRootCmd assembles leadctl.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "leadctl",
		Short:   "Inspect and manage the lead store",
		Version: version,
		Long: `leadctl talks to the store named in the service configuration
(memory, postgres or sqlite) and runs the same listing code as the HTTP API.

With the memory driver every invocation starts empty; seeding applies
when seed.enabled is true.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Path to config YAML (env APP_* overrides still apply)")
	root.PersistentFlags().Bool("verbose", false, "Log at debug level to stderr")

	root.AddCommand(seedCmd())
	root.AddCommand(listCmd())
	root.AddCommand(getCmd())
	root.AddCommand(cursorCmd())
	return root
}

// env is what a store-backed command needs.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	store repository.Store
	svc   service.LeadService
}

func (e *env) Close() {
	if e.store != nil {
		_ = e.store.Close()
	}
}

func openEnv(cmd *cobra.Command, autoSeed bool) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Logger.OutputTarget = "stderr"
	cfg.Logger.Format = "console"
	cfg.Logger.DebugFile = ""
	cfg.Logger.Level = "warn"
	if verbose {
		cfg.Logger.Level = "debug"
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{cfg: cfg, log: log, store: store}
	if autoSeed && cfg.Seed.Enabled {
		if _, err := seed.IfEmpty(ctx, store, cfg.Seed.Count, cfg.Seed.Seed, log); err != nil {
			e.Close()
			return nil, err
		}
	}
	e.svc = service.NewLeadService(store, log,
		service.WithPageSizes(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize))
	return e, nil
}

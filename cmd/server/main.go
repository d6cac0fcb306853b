package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/lead-service/internal/bootstrap"
	"github.com/maxviazov/lead-service/internal/config"
	"github.com/maxviazov/lead-service/internal/handler"
	"github.com/maxviazov/lead-service/internal/logger"
	"github.com/maxviazov/lead-service/internal/seed"
	"github.com/maxviazov/lead-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

// configPath prefers APP_CONFIG, then ./config.yaml when present; otherwise
// defaults plus APP_* env vars are used.
func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func main() {
	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("store initialization failed")
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error().Err(err).Msg("store close failed")
		}
	}()

	if cfg.Seed.Enabled {
		if _, err := seed.IfEmpty(ctx, store, cfg.Seed.Count, cfg.Seed.Seed, appLogger); err != nil {
			appLogger.Fatal().Err(err).Msg("seeding failed")
		}
	}

	leadSvc := service.NewLeadService(store, appLogger,
		service.WithPageSizes(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	info := handler.Info{Name: cfg.App.Name, Version: cfg.App.Version, Environment: cfg.App.Env}
	engine := handler.NewEngine(appLogger, cfg.App.AllowedOrigins, store, info, leadSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info().Str("addr", srv.Addr).Str("driver", cfg.Store.Driver).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		appLogger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error().Err(err).Msg("server stopped with error")
		return
	}
	appLogger.Info().Msg("server stopped")
}

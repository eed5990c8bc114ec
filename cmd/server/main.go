// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/tagsmith/internal/api"
	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/config"
	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/importer"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/supervisor"
	"github.com/tomtom215/tagsmith/internal/supervisor/services"
	"github.com/tomtom215/tagsmith/internal/tagging"
	ws "github.com/tomtom215/tagsmith/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "tagsmith",
		Version:   version,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("storage", cfg.Storage.Backend).
		Bool("tmdb", cfg.TMDB.Enabled).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting tagsmith")
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}

	store, gc, err := openStore(&cfg.Storage)
	if err != nil {
		return err
	}
	cat := catalog.New(store)
	defer func() {
		if err := cat.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog")
		}
	}()

	engine := tagging.NewEngine()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.SeedCSVPath != "" {
		if _, err := importer.NewSeeder(cat, engine).SeedFile(ctx, cfg.Storage.SeedCSVPath); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	hub := ws.NewHub()

	var bus *events.Bus
	deps := api.Deps{
		Catalog: cat,
		Engine:  engine,
		Config:  cfg,
		Version: version,
	}
	if cfg.Events.Enabled {
		busCfg := events.DefaultConfig()
		busCfg.BufferSize = cfg.Events.BufferSize
		bus = events.NewBus(busCfg, nil)
		bus.ForwardTo(hub)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		deps.Events = bus
		deps.EventsRunning = bus.IsRunning
	}

	if cfg.TMDB.Enabled {
		client, err := importer.NewTMDBClient(cfg.TMDB)
		if err != nil {
			return fmt.Errorf("create TMDB client: %w", err)
		}
		deps.TMDB = client
		logging.Info().Str("base_url", cfg.TMDB.BaseURL).Msg("TMDB import enabled")
	}

	handler := api.NewHandler(deps)
	router := api.NewRouter(handler, ws.NewHandler(hub, cfg.Security.CORSOrigins))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	if gc != nil && cfg.Storage.GCInterval > 0 {
		tree.AddDataService(services.NewStorageGCService(gc, cfg.Storage.GCInterval))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	if bus != nil {
		tree.AddMessagingService(services.NewEventRouterService(bus))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}

// openStore opens the configured catalog backend. The second result is
// non-nil when the backend needs periodic value log GC.
func openStore(cfg *config.StorageConfig) (catalog.Store, services.GarbageCollector, error) {
	switch cfg.Backend {
	case config.StorageBadger:
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create badger directory: %w", err)
		}
		store, err := catalog.OpenBadgerStore(catalog.BadgerConfig{
			Path:        cfg.Path,
			SyncWrites:  cfg.SyncWrites,
			Compression: true,
		})
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Str("path", cfg.Path).Msg("Opened BadgerDB catalog")
		return store, store, nil
	default:
		return catalog.NewMemoryStore(), nil, nil
	}
}

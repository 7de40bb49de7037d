// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

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

	_ "github.com/tomtom215/reelfeed/docs" // Import generated swagger docs
	"github.com/tomtom215/reelfeed/internal/api"
	"github.com/tomtom215/reelfeed/internal/auth"
	"github.com/tomtom215/reelfeed/internal/cdn"
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/database"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/session"
	"github.com/tomtom215/reelfeed/internal/supervisor"
	"github.com/tomtom215/reelfeed/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// @title						Reelfeed API
// @version					1.0
// @description				Paginated short-video feed with recency tiers, owner interleaving and sponsored slots.
// @license.name				AGPL-3.0-or-later
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(loggingConfig(&cfg.Logging))

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Reelfeed exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Reelfeed stopped")
}

// run wires every component and blocks until shutdown. Deferred cleanup
// runs in reverse order of creation.
//
//nolint:gocyclo // sequential setup
func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("session_store", cfg.Session.Store).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting Reelfeed")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// NATS
	msg, err := InitNATS(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize NATS: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		msg.Shutdown(shutdownCtx)
	}()

	// Sessions
	factory, err := session.NewFactory(sessionFactoryConfig(&cfg.Session), msg.JetStream())
	if err != nil {
		return fmt.Errorf("failed to configure session store: %w", err)
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	store, err := factory.CreateStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	sessions := session.NewManager(store, sessionConfig(&cfg.Session),
		session.WithLogger(logging.WithComponent("session")))

	// Feed
	var source feed.DataStore = database.NewBreakerStore(db, &cfg.Breaker)
	if cfg.Cache.ProfileTTL > 0 {
		profiles := database.NewProfileCache(source, cfg.Cache.ProfileTTL)
		defer profiles.Close()
		source = profiles
	}
	urls, err := cdn.New(cfg.CDN.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid CDN base URL: %w", err)
	}
	assembler, err := feed.NewAssembler(feedConfig(&cfg.Feed), source, sessions, urls,
		feed.WithLogger(logging.WithComponent("feed")))
	if err != nil {
		return fmt.Errorf("failed to create feed assembler: %w", err)
	}

	// Impressions
	if err := msg.InitEvents(cfg, db); err != nil {
		return fmt.Errorf("failed to initialize impression pipeline: %w", err)
	}

	// Authentication
	var jwtManager *auth.JWTManager
	if cfg.Security.AuthMode == "jwt" {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return fmt.Errorf("failed to initialize JWT manager: %w", err)
		}
	}
	identity := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode, cfg.Security.AllowAnonymous, api.WriteError)

	// HTTP
	handler := api.NewHandler(assembler,
		api.WithImpressions(msg.recorder),
		api.WithRequestTimeout(cfg.Feed.RequestTimeout),
		api.WithVersion(version),
		api.WithHealthCheck("database", db),
		api.WithHealthCheck("sessions", sessions),
		api.WithHealthCheck("nats", msg),
	)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(api.RouterConfigFromSecurity(&cfg.Security), handler, identity),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewSessionSweepService(sessions, cfg.Session.SweepInterval, logging.Logger()))
	tree.AddMessagingService(services.NewEventRouterService(msg.router))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly once and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	// In-flight impression publishes finish before the bus is closed.
	handler.Wait()
	return nil
}

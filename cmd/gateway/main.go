// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

// Command gateway is the entry point for the storefront edge gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to Redis (sessions + cart snapshots).
//  4. Build the upstream API client.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/datadoit/storefront/internal/account"
	"github.com/datadoit/storefront/internal/api"
	"github.com/datadoit/storefront/internal/auth"
	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/cart"
	"github.com/datadoit/storefront/internal/catalog"
	"github.com/datadoit/storefront/internal/checkout"
	"github.com/datadoit/storefront/internal/platform/config"
	"github.com/datadoit/storefront/internal/platform/constants"
	redisstore "github.com/datadoit/storefront/internal/platform/redis"
	"github.com/datadoit/storefront/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A .env file is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Upstream Client ────────────────────────────────────────────────
	upstreamClient := backend.NewClient(cfg.BackendURL, log)

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckUpstream: func() error {
			probe := &http.Client{Timeout: constants.UpstreamRequestTimeout}
			response, err := probe.Head(cfg.BackendURL + "/")
			if err != nil {
				return err
			}
			return response.Body.Close()
		},
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	sessionStore := session.NewRedisStore(rdb)

	cartService := cart.NewService(
		cart.NewUpstreamStore(upstreamClient),
		cart.NewRedisSnapshotStore(rdb),
		log,
	)
	authService := auth.NewService(auth.NewUpstreamStore(upstreamClient), cartService, log)
	checkoutService := checkout.NewService(checkout.NewUpstreamStore(upstreamClient), cartService, log)
	catalogService := catalog.NewService(catalog.NewUpstreamStore(upstreamClient), log)
	accountService := account.NewService(account.NewUpstreamStore(upstreamClient), log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Catalog:   catalog.NewHandler(catalogService),
		Cart:      cart.NewHandler(cartService),
		Checkout:  checkout.NewHandler(checkoutService),
		Account:   account.NewHandler(accountService),
	}

	// The server context outlives startup: it drives background middleware
	// work such as rate limiter cleanup.
	server := api.NewServer(context.Background(), cfg, log, sessionStore, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dspace-browser/internal/api"
	"github.com/taibuivan/dspace-browser/internal/browser"
	"github.com/taibuivan/dspace-browser/internal/platform/constants"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the view server",
	Long:  "Serve the routed views over HTTP, one application root per browser session, with store snapshots pushed over a websocket.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe follows the startup sequence:
//
//  1. Load configuration and the logger.
//  2. Wire the catalog client and the session registry.
//  3. Wire health and view handlers.
//  4. Start the HTTP server with graceful shutdown.
func runServe(cmd *cobra.Command, _ []string) error {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, log, err := loadConfig(os.Stdout, slog.LevelInfo)
	if err != nil {
		return err
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("catalog", cfg.CatalogAPIURL),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 2. Catalog & Sessions ─────────────────────────────────────────────
	client := newCatalogClient(cfg, log)

	registry := browser.NewRegistry(browser.Options{
		Client:         client,
		PageSize:       cfg.DefaultPageSize,
		LookupPageSize: cfg.LookupPageSize,
		TTL:            cfg.SessionTTL,
		Logger:         log,
	})
	go registry.Run(ctx)

	// ── 3. Handlers ───────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCatalog: client.Ping,
	}, log)

	server := api.NewServer(ctx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		View:      browser.NewHandler(registry, cfg.IsDevelopment()),
	})

	// ── 4. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err = <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if shutdownErr := server.Shutdown(shutdownTimeout); shutdownErr != nil {
		log.Error("shutdown_error", slog.Any("error", shutdownErr))
		return errors.Join(err, shutdownErr)
	}

	log.Info("server_stopped_cleanly")
	return err
}

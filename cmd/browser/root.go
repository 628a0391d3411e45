// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/platform/config"
	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/internal/platform/httpclient"
)

var rootCmd = &cobra.Command{
	Use:           "browser",
	Short:         "Browse a DSpace repository: communities, collections and items",
	Long:          "Catalog browser for a DSpace REST API. Configuration is read from the environment (CATALOG_API_URL, SERVER_PORT, ...).",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newLogger builds the JSON logger every command uses.
func newLogger(writer io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String(constants.FieldApp, constants.AppName))
}

// loadConfig reads the environment and raises the log level when DEBUG is set.
func loadConfig(writer io.Writer, level slog.Level) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := newLogger(writer, level)
	slog.SetDefault(log)

	log.Debug("debug_logging_enabled")
	return cfg, log, nil
}

// newCatalogClient wires the remote catalog client from cfg.
func newCatalogClient(cfg *config.Config, log *slog.Logger) *catalog.Client {
	return catalog.NewClient(cfg.CatalogAPIURL, httpclient.New(cfg.UpstreamTimeout, log))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dspace-browser/internal/browser"
	"github.com/taibuivan/dspace-browser/internal/view"
	"github.com/taibuivan/dspace-browser/pkg/uuidv7"
)

var browseStart string

var _ sessionIface = (*browser.Session)(nil)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog from the terminal",
	Long:  "Drive one browser session interactively: list, open, page through and go back, against the configured catalog.",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseStart, "start", "/", "Route to open first, e.g. /collection/{id}/items")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	start, err := view.ParseRoute(browseStart)
	if err != nil {
		return err
	}

	// Logs go to stderr at warn so they stay out of the way of the prompt.
	cfg, log, err := loadConfig(os.Stderr, slog.LevelWarn)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	session := browser.NewSession(uuidv7.New(), browser.Options{
		Client:         newCatalogClient(cfg, log),
		PageSize:       cfg.DefaultPageSize,
		LookupPageSize: cfg.LookupPageSize,
		Logger:         log,
	})
	defer session.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Catalog %s, type help for commands\n", cfg.CatalogAPIURL)

	render(out, session.Open(ctx, start))
	runREPL(ctx, session, bufio.NewScanner(cmd.InOrStdin()), out)
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command browser is the entry point of the catalog browser.
//
// # Commands
//
//	browser serve   run the per-session view server (HTTP + websocket)
//	browser browse  drive one session interactively from the terminal
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"
)

func main() {
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(os.Stderr, slog.LevelInfo)
	slog.SetDefault(log)

	if err := rootCmd.Execute(); err != nil {
		log.Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

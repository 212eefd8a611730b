// blueprint - A terminal client for AI-generated architectural floor plans.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/planhaus/blueprint-tui/internal/api"
	"github.com/planhaus/blueprint-tui/internal/config"
	"github.com/planhaus/blueprint-tui/internal/history"
	"github.com/planhaus/blueprint-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("blueprint %s (%s, %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printUsage()
			return
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "blueprint is an interactive application and needs a terminal")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blueprint: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// All logging goes to a file; stdout belongs to the TUI.
	logFile, err := setupLogging()
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log.Printf("blueprint %s starting (backend %s)", Version, cfg.Backend.BaseURL)

	tokens, err := api.NewFileTokenProvider(cfg.Backend.TokenFile)
	if err != nil {
		return fmt.Errorf("reading token file: %w", err)
	}
	defer tokens.Close()

	client := api.NewClient(cfg.Backend.BaseURL, tokens).
		WithTimeout(cfg.RequestTimeout())

	var store *history.Store
	if cfg.History.Enabled {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		store, err = history.Open(filepath.Join(dir, "history.db"))
		if err != nil {
			// A broken archive should not keep the app from starting.
			log.Printf("history unavailable: %v", err)
			store = nil
		} else {
			store.MaxEntries = cfg.History.MaxEntries
			defer store.Close()
		}
	}

	app := ui.NewApp(cfg, client, store)

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

// setupLogging redirects the standard logger to a file under the config
// directory.
func setupLogging() (*os.File, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "blueprint.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	return f, nil
}

func printUsage() {
	fmt.Println(`blueprint - generate and browse AI floor plans from the terminal

Usage:
  blueprint            start the interactive TUI
  blueprint --version  print version information

Configuration lives in ~/.blueprint/config.toml. Environment overrides:
  BLUEPRINT_API_URL     service base URL
  BLUEPRINT_PAGE_SIZE   feed page size
  BLUEPRINT_TOKEN_FILE  bearer token file path`)
}

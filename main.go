// authgate TUI - email + one-time-passcode login in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authgate-tui/internal/analytics"
	"github.com/jeranaias/authgate-tui/internal/auth"
	"github.com/jeranaias/authgate-tui/internal/config"
	"github.com/jeranaias/authgate-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", defaultConfigPath(), "path to the TOML config file")
		watchConfig = flag.Bool("watch-config", false, "reload the config file on change")
		noAnalytics = flag.Bool("no-analytics", false, "disable the event sink regardless of config")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("authgate %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "authgate: %v\n", err)
		os.Exit(1)
	}
	cfg.Validate()

	// The sink is optional everywhere: a nil Logger leaves the engine on
	// its built-in no-op sink.
	var sink analytics.Logger
	if cfg.Analytics.Enabled && !*noAnalytics {
		eventLogger, err := analytics.NewEventLogger(
			analytics.WithLogFile(cfg.Analytics.LogPath),
			analytics.WithDatabase(cfg.Analytics.DatabasePath),
		)
		if err != nil {
			// Telemetry must never block login.
			log.Printf("analytics disabled: %v", err)
		} else {
			sink = eventLogger
			defer eventLogger.Close()
		}
	}

	engine := auth.New(
		auth.WithPolicy(cfg.OTPPolicy()),
		auth.WithTickInterval(cfg.TickInterval()),
		auth.WithAnalytics(sink),
	)
	defer engine.Close()

	if *watchConfig {
		watcher, err := config.NewWatcher(*configPath, func(c *config.Config) {
			engine.SetPolicy(c.OTPPolicy())
		})
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	program := tea.NewProgram(ui.NewModel(engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "authgate: %v\n", err)
		os.Exit(1)
	}
}

// defaultConfigPath is ~/.authgate/config.toml, or a relative fallback
// when the home directory cannot be resolved.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".authgate", "config.toml")
	}
	return filepath.Join(home, ".authgate", "config.toml")
}

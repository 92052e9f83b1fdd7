// sophia TUI - A terminal chat client for the Sophia assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sophiachat/sophia-tui/internal/api"
	"github.com/sophiachat/sophia-tui/internal/auth"
	"github.com/sophiachat/sophia-tui/internal/chat"
	"github.com/sophiachat/sophia-tui/internal/config"
	"github.com/sophiachat/sophia-tui/internal/format"
	"github.com/sophiachat/sophia-tui/internal/logging"
	"github.com/sophiachat/sophia-tui/internal/ui"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v":
			fmt.Printf("sophia %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printUsage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: %s requires a path argument\n", args[i])
				os.Exit(1)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n\n", args[i])
			printUsage()
			os.Exit(1)
		}
	}

	// Load configuration (missing file means defaults)
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Structured logging to a file: stdout and stderr belong to the TUI
	logPath, err := cfg.LogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := logging.Setup(cfg.Log.Level, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("starting sophia", "version", Version, "server", cfg.Server.BaseURL)

	if cfg.UI.Theme == "light" {
		lipgloss.SetHasDarkBackground(false)
	}

	// Session store doubles as the client's token source, so a 401
	// anywhere drops the whole app back to the login screen.
	store := auth.NewStore()
	client := api.NewClient(&api.Config{
		BaseURL:     cfg.Server.BaseURL,
		Timeout:     time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		ChatTimeout: time.Duration(cfg.Server.ChatTimeoutSecs) * time.Second,
	}, store)

	authSvc := auth.NewService(client, store)
	chatSvc := chat.NewService(client)

	theme := styles.NewTheme()
	formatter := format.New(format.Options{
		URLDisplayMax: cfg.Format.URLDisplayMax,
		KeyMaxRunes:   cfg.Format.KeyMaxRunes,
	})

	app := ui.NewApp(authSvc, chatSvc, theme, formatter, logger)
	app.SetShowTimestamps(cfg.UI.ShowTimestamps)
	app.SetSidebarWidth(cfg.UI.SidebarWidth)

	// Reload log verbosity when the config file changes on disk
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if configPath == "" {
		if path, err := config.ConfigPath(); err == nil {
			go func() {
				if err := config.Watch(ctx, path, func(next *config.Config) {
					logger.SetLevel(logging.ParseLevel(next.Log.Level))
					logger.Info("config reloaded", "level", next.Log.Level)
				}); err != nil {
					logger.Warn("config watch stopped", "err", err)
				}
			}()
		}
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running sophia: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("sophia - terminal chat client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sophia [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -c, --config <path>  Use an explicit config file")
	fmt.Println("  -v, --version        Print version information")
	fmt.Println("  -h, --help           Show this help")
}

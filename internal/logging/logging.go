// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the application logger. The terminal is
// owned by the UI, so all logging goes to a file; writing to stdout or
// stderr would corrupt the display.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup opens the log file and returns a structured logger writing to
// it, plus a cleanup func to be deferred from main. Unknown levels fall
// back to info.
func Setup(level, path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Level:           ParseLevel(level),
	})

	cleanup := func() { file.Close() }
	return logger, cleanup, nil
}

// Discard returns a logger that drops everything; used in tests and as
// a safe zero-setup default.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a config level string to a log level. Unknown
// strings fall back to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

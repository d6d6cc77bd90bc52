// Package log sets up the structured logger of codewriter. The terminal is
// owned by the editor, so records go to a file or nowhere at all.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Init returns a logger writing text records to the file at path, and a
// function closing that file. An empty path discards every record. Debug
// records are only written when debug is true.
func Init(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return Discard(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))

	return logger, func() { _ = file.Close() }, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

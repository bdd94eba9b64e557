// Package logging builds the run's observability sink: timestamped,
// leveled lines written to both a log file and standard output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultPath returns the default log file location, beside the
// executable. Falls back to the working directory when the executable
// path cannot be resolved.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "pagewatch.log"
	}
	return filepath.Join(filepath.Dir(exe), "pagewatch.log")
}

// Setup opens the log file for appending and returns a logger writing
// to it and to stdout, plus a close function for the file handle.
func Setup(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		path = DefaultPath()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, f), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(handler), f.Close, nil
}

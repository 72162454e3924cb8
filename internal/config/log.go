package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SetupLogFile redirects the standard logger to ~/.loadout/logs/loadout.log.
// The editor TUI owns the terminal while it runs, so log lines written to
// stderr would corrupt its output. Returns a close function.
func SetupLogFile() (func(), error) {
	if err := EnsureLogsDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	dir, err := LogsDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "loadout.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

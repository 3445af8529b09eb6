// Package enginelog wraps log/slog for the engine's host-hook surface
// (to_out/to_err) and diagnostic output, grounded on the structured
// logging style zurustar-son-et's pkg/logger uses.
package enginelog

import (
	"fmt"
	"log/slog"
	"os"
)

var global *slog.Logger

// Init configures the package-level logger at the given level ("debug",
// "info", "warn", "error"). Unset, Logger returns slog.Default().
func Init(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("enginelog: invalid log level: %s", level)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	global = slog.New(handler)
	slog.SetDefault(global)
	return nil
}

// Logger returns the package-level logger, defaulting to slog.Default()
// if Init was never called.
func Logger() *slog.Logger {
	if global == nil {
		return slog.Default()
	}
	return global
}

// Package logging configures the zerolog logger shared by the CLI commands.
//
// Output goes to stderr so stdout stays clean for rendered trees and the MCP
// stdio protocol.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  zerolog.Level
	Format string    // "console" or "json"
	Output io.Writer // defaults to os.Stderr
}

// DefaultConfig returns info-level console logging on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  zerolog.InfoLevel,
		Format: "console",
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

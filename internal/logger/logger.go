// Package logger configures the process-wide zerolog logger used by
// every command. CLI output meant for humans goes to stdout via the
// commands themselves; the logger writes diagnostics to stderr.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config controls the logger. Zero values mean info level, console
// format, stderr output.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	Output io.Writer
}

// New creates a logger from config.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ForCLI builds the logger for a command invocation. verbose lowers
// the level to debug, quiet raises it to warn; verbose wins when both
// are set.
func ForCLI(verbose, quiet bool) zerolog.Logger {
	level := "info"
	if quiet {
		level = "warn"
	}
	if verbose {
		level = "debug"
	}
	if env := os.Getenv("LOOM_LOG_LEVEL"); env != "" && !verbose && !quiet {
		level = env
	}
	return New(Config{Level: level, Format: os.Getenv("LOOM_LOG_FORMAT")})
}

// Package logging configures zerolog output for crossfoot. Console
// format on a terminal, JSON otherwise; level comes from the --verbose
// flag or the CROSSFOOT_LOG environment variable.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = newLogger(levelFromEnv(), os.Stderr)

// Setup reinitializes the default logger once flags are parsed.
// Precedence: --verbose beats CROSSFOOT_LOG beats info.
func Setup(verbose bool) {
	level := levelFromEnv()
	if verbose {
		level = zerolog.DebugLevel
	}
	defaultLogger = newLogger(level, os.Stderr)
	log.Logger = defaultLogger
}

// Default returns the process-wide logger
func Default() *zerolog.Logger {
	return &defaultLogger
}

// New creates a logger writing to w at the current global level
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

func newLogger(level zerolog.Level, out *os.File) zerolog.Logger {
	var writer io.Writer = out
	if isTerminal(out) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func levelFromEnv() zerolog.Level {
	levelStr := os.Getenv("CROSSFOOT_LOG")
	if levelStr == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

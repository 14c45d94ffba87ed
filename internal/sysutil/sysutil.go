// Package sysutil configures process-wide logging for the booking
// backend. It owns the zerolog globals so main stays declarative.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging sets the global zerolog level and output format. With
// pretty enabled, logs go through the human-readable console writer;
// otherwise they stay JSON on stderr. Timestamps are epoch seconds in
// JSON mode and RFC3339 in pretty mode.
func InitLogging(level string, pretty bool) {
	SetLogLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// SetLogLevel sets the global zerolog level from its string name.
// Accepted (case-insensitive, trimmed): debug, info, warn/warning,
// error, fatal, panic. Anything else, including empty, means info.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

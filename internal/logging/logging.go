// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger writing to stdout.
func Setup(level, format string) *slog.Logger {
	l := New(os.Stdout, level, format)
	slog.SetDefault(l)
	return l
}

// New builds a logger. format "json" selects the JSON handler; anything else
// gets tint's coloured text output.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := parseLevel(level)
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = tint.NewHandler(w, &tint.Options{Level: lvl, NoColor: w != os.Stdout})
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/ndfd-forecast-service/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const serviceName = "ndfd-forecast"

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", serviceName)
}

// NewStderrLogger is the command-line logger. stdout carries the forecast, so
// logs go to stderr as text.
func NewStderrLogger(cfg *config.Config) *slog.Logger {
	return newTextLogger(os.Stderr, cfg.LogLevel)
}

func newTextLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})).With("service", serviceName)
}

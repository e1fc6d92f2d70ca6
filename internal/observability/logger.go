// Package observability provides structured logging for the scheduler
// process: a slog handler that stamps every line with the RPC correlation
// ID carried on its context.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// LogFormat selects the slog handler used for output.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogConfig configures the process-wide logger.
type LogConfig struct {
	Level     slog.Level
	Format    LogFormat
	Output    io.Writer
	AddSource bool
}

// DefaultLogConfig returns sensible defaults for local/dev use.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  slog.LevelInfo,
		Format: LogFormatText,
		Output: os.Stderr,
	}
}

// NewLogger builds a logger whose handler injects the correlation ID found
// on a record's context, following the teacher's attributeHandler pattern.
func NewLogger(cfg LogConfig) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var handler slog.Handler
	switch cfg.Format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(&correlationHandler{handler: handler})
}

// LoggerFromEnv builds a logger from SCHEDULER_LOG_LEVEL/SCHEDULER_LOG_FORMAT.
func LoggerFromEnv(getenv func(string) string) *slog.Logger {
	cfg := DefaultLogConfig()
	if level := getenv("SCHEDULER_LOG_LEVEL"); level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			cfg.Level = l
		}
	}
	if format := getenv("SCHEDULER_LOG_FORMAT"); format != "" {
		cfg.Format = LogFormat(format)
	}
	return NewLogger(cfg)
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type logFormat int

const (
	formatText logFormat = iota
	formatJSON
)

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func parseFormat(format string) (logFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return formatText, nil
	case "json":
		return formatJSON, nil
	default:
		return formatText, fmt.Errorf("unknown log format %q", format)
	}
}

// NewLogger builds the structured logger described by the config, writing to w.
// Unknown levels and formats fall back to info and text; Validate reports them.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	format, _ := parseFormat(c.LogFormat)

	opts := &slog.HandlerOptions{Level: level}
	if format == formatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

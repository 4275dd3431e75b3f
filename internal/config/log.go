package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}

// NewLogger builds a logger writing to w whose level is read from lv, so
// callers can change the level after construction. lv is set to the
// configured level.
func (l LogConfig) NewLogger(w io.Writer, lv *slog.LevelVar) *slog.Logger {
	if level, err := l.SlogLevel(); err == nil {
		lv.Set(level)
	}

	opts := &slog.HandlerOptions{Level: lv}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

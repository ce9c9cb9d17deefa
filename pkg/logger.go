package pkg

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger создаёт JSON логгер. Неизвестный уровень трактуется как info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})

	return slog.New(handler).With("service", "linkvault")
}

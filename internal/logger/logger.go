package logger

import (
	"log/slog"
	"os"
)

// New creates the JSON logger shared by the whole service. Every line
// carries a service attribute so storefront entries are filterable when
// several services log to the same sink.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "storefront"))
}

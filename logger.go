package arbor

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// logger is the package-wide logger. arbor is single-threaded, so a plain
// variable is enough.
var logger = newNopLogger()

// SetLogger configures the package logger. By default arbor produces no log
// output. Pass nil to restore the silent default.
//
// Log levels used by arbor:
//   - [slog.LevelWarn]: debug-mode tree diagnostics (deep trees, wide groups)
//   - [slog.LevelError]: panics recovered from lifecycle listeners when the
//     scene has no error callback
//
// Example:
//
//	arbor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return logger
}

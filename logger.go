package scratchcard

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. It is the handler until a host calls
// SetLogger.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// current is read from texture loader goroutines as well as the card's
// own goroutine.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newNopLogger())
}

// SetLogger configures the logger used by scratchcard.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: surface allocation, gesture transitions, samples
//   - [slog.LevelInfo]: completion
//   - [slog.LevelWarn]: texture load failures (the cover stays flat)
//
// Example:
//
//	scratchcard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	current.Store(l)
}

// Logger returns the current logger.
// Hosts under cmd/ use it so their output lands in the same handler.
func Logger() *slog.Logger {
	return current.Load()
}

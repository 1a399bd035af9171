package montepi

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var silent = slog.New(nopHandler{})

// active holds the logger installed by SetLogger. Nil means silent.
var active atomic.Pointer[slog.Logger]

// SetLogger configures the logger shared by the simulation, the texture
// upload path and the snapshot writer. By default nothing is logged.
// Pass nil to restore the silent default. It is safe to call while a
// frame is running.
//
// Log levels used:
//   - [slog.LevelDebug]: resets, resizes and color changes
//   - [slog.LevelInfo]: lifecycle events (window ready, snapshot written)
//   - [slog.LevelWarn]: non-fatal failures (texture upload, snapshot write)
//
// Example:
//
//	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	montepi.SetLogger(slog.New(h))
//	sim, _ := montepi.New(64, 64)
//	_ = sim.Reset() // logs "montepi: reset" with width, height and pixels
func SetLogger(l *slog.Logger) {
	active.Store(l)
}

// Logger returns the current logger, never nil.
func Logger() *slog.Logger {
	if l := active.Load(); l != nil {
		return l
	}
	return silent
}

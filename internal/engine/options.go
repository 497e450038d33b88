package engine

import (
	"log/slog"
	"time"

	"github.com/dshills/annotate/internal/config"
	"github.com/dshills/annotate/internal/engine/history"
	"github.com/dshills/annotate/internal/event"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMergeWindow limits merging to commands applied within d of each
// other. Zero disables the limit.
func WithMergeWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.mergeWindow = d
		}
	}
}

// WithMergeEnabled turns command merging on or off.
func WithMergeEnabled(enabled bool) Option {
	return func(e *Engine) {
		e.mergeEnabled = enabled
	}
}

// WithBus publishes file and history notifications on bus.
func WithBus(bus *event.Bus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithConfig applies the history settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg == nil {
			return
		}
		WithMaxUndoEntries(cfg.History.MaxEntries)(e)
		WithMergeEnabled(cfg.History.MergeEnabled)(e)
		WithMergeWindow(time.Duration(cfg.History.MergeWindow))(e)
	}
}

// withClock overrides the history time source in tests.
func withClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

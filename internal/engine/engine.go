package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/config"
	"github.com/dshills/annotate/internal/engine/command"
	"github.com/dshills/annotate/internal/engine/history"
	"github.com/dshills/annotate/internal/event"
	"github.com/dshills/annotate/internal/logging"
)

// Engine owns the open annotation files and their shared undo history.
type Engine struct {
	// mu guards files, the clipboard and settings. The history serializes
	// itself and publishes outside its lock, so history calls run without
	// mu and bus handlers may read the engine.
	mu sync.RWMutex

	files     []*annotation.File
	byName    map[string]*annotation.File
	history   *history.History
	clipboard []*annotation.Annotation

	bus *event.Bus
	log *slog.Logger

	// Configuration
	maxUndoEntries int
	mergeEnabled   bool
	mergeWindow    time.Duration
	now            func() time.Time
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		byName:         make(map[string]*annotation.File),
		maxUndoEntries: DefaultMaxUndoEntries,
		mergeEnabled:   true,
		log:            logging.Discard(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.history = history.NewHistory(e.maxUndoEntries,
		history.WithMergeEnabled(e.mergeEnabled),
		history.WithMergeWindow(e.mergeWindow),
		history.WithPublisher(e.bus),
		history.WithClock(e.now),
	)
	return e
}

// ============================================================================
// Files
// ============================================================================

// NewFile opens an empty annotation file.
func (e *Engine) NewFile(name string) (*annotation.File, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrFileExists, name)
	}
	f := annotation.NewFile(name, e.bus)
	e.files = append(e.files, f)
	e.byName[name] = f
	e.log.Debug("file opened", "file", name)
	return f, nil
}

// File returns the open file called name.
func (e *Engine) File(name string) (*annotation.File, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.byName[name]
	return f, ok
}

// Files returns the open files in the order they were opened.
func (e *Engine) Files() []*annotation.File {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.files)
}

// Bus returns the event bus, which may be nil.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}

// ============================================================================
// History
// ============================================================================

// Apply records a configured command so it can be undone. The command has
// already changed the annotations. Invalid commands are rejected.
func (e *Engine) Apply(cmd *command.Command) error {
	if cmd == nil {
		return fmt.Errorf("apply: %w", command.ErrInvalidCommand)
	}
	mode, description, count := cmd.Mode(), cmd.Description(), cmd.Count()
	merged, err := e.history.Push(cmd)
	if err != nil {
		e.log.Warn("command rejected", "mode", mode, "error", err)
		return fmt.Errorf("apply %s: %w", mode, err)
	}
	e.log.Debug("command applied",
		"mode", mode,
		"description", description,
		"annotations", count,
		"merged", merged,
	)
	return nil
}

// Undo reverts the most recent undo step.
func (e *Engine) Undo() error {
	desc := e.UndoDescription()
	if err := e.history.Undo(); err != nil {
		e.log.Warn("undo failed", "description", desc, "error", err)
		return err
	}
	e.log.Debug("undo", "description", desc)
	return nil
}

// Redo reapplies the most recently undone step.
func (e *Engine) Redo() error {
	desc := e.RedoDescription()
	if err := e.history.Redo(); err != nil {
		e.log.Warn("redo failed", "description", desc, "error", err)
		return err
	}
	e.log.Debug("redo", "description", desc)
	return nil
}

// CanUndo returns true if there are operations to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoDescription returns the description of the next undo step, or an
// empty string.
func (e *Engine) UndoDescription() string {
	info, _ := e.history.PeekUndo()
	return info.Description
}

// RedoDescription returns the description of the next redo step, or an
// empty string.
func (e *Engine) RedoDescription() string {
	info, _ := e.history.PeekRedo()
	return info.Description
}

// ClearHistory drops all undo and redo steps.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// History exposes the undo stack for grouping and checkpoints.
func (e *Engine) History() *history.History {
	return e.history
}

// ApplyConfig updates history settings in place, as after a config reload.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	maxEntries := cfg.History.MaxEntries
	mergeEnabled := cfg.History.MergeEnabled
	mergeWindow := time.Duration(cfg.History.MergeWindow)

	e.mu.Lock()
	e.maxUndoEntries = maxEntries
	e.mergeEnabled = mergeEnabled
	e.mergeWindow = mergeWindow
	e.mu.Unlock()

	e.history.SetMaxEntries(maxEntries)
	e.history.SetMergeEnabled(mergeEnabled)
	e.history.SetMergeWindow(mergeWindow)
	e.log.Info("configuration applied",
		"max_entries", maxEntries,
		"merge_enabled", mergeEnabled,
		"merge_window", mergeWindow,
	)
}

// ============================================================================
// Clipboard
// ============================================================================

// Copy places detached copies of anns on the clipboard.
func (e *Engine) Copy(anns []*annotation.Annotation) {
	clip := make([]*annotation.Annotation, 0, len(anns))
	for _, a := range anns {
		if a != nil {
			clip = append(clip, a.Clone())
		}
	}
	e.mu.Lock()
	e.clipboard = clip
	e.mu.Unlock()
}

// Clipboard returns copies of the clipboard contents.
func (e *Engine) Clipboard() []*annotation.Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*annotation.Annotation, len(e.clipboard))
	for i, a := range e.clipboard {
		out[i] = a.Clone()
	}
	return out
}

// Cut removes anns from their files as one undo step and places copies on
// the clipboard.
func (e *Engine) Cut(anns []*annotation.Annotation) error {
	cmd := command.New()
	if err := cmd.SetModeCutAnnotations(anns); err != nil {
		return err
	}
	if err := e.Apply(cmd); err != nil {
		return err
	}
	e.Copy(anns)
	return nil
}

// Paste inserts the clipboard contents into the file called name and
// returns the pasted annotations.
func (e *Engine) Paste(name string) ([]*annotation.Annotation, error) {
	f, ok := e.File(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	clip := e.Clipboard()
	if len(clip) == 0 {
		return nil, ErrEmptyClipboard
	}

	cmd := command.New()
	pasted, err := cmd.SetModePasteAnnotations(f, clip)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(cmd); err != nil {
		return nil, err
	}
	return pasted, nil
}

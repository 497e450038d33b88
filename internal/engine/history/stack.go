package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/annotate/internal/event"
)

// DefaultMaxEntries is used when a non-positive maximum is requested.
const DefaultMaxEntries = 1000

// Topics published by History.
const (
	TopicPushed event.Topic = "history.pushed"
	TopicMerged event.Topic = "history.merged"
	TopicUndone event.Topic = "history.undone"
	TopicRedone event.Topic = "history.redone"
	TopicFailed event.Topic = "history.failed"
)

// Publisher receives history notifications.
type Publisher interface {
	Publish(topic event.Topic, payload any)
}

// OperationInfo provides read-only info about a history entry.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the entry was first pushed
	Updated     time.Time // When a merge last extended the entry
	Merges      int       // Number of commands folded into the entry
	Err         error     // Set on history.failed notifications
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
	updated   time.Time
	merges    int
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
		Updated:     e.updated,
		Merges:      e.merges,
	}
}

// History manages the undo/redo stacks of annotation commands.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	// Configuration
	maxEntries   int
	mergeEnabled bool
	mergeWindow  time.Duration

	now func() time.Time
	pub Publisher
}

// Option configures a History.
type Option func(*History)

// WithMergeWindow limits merging to pushes that arrive within d of the last
// change to the top entry. Zero means no limit.
func WithMergeWindow(d time.Duration) Option {
	return func(h *History) {
		h.mergeWindow = d
	}
}

// WithMergeEnabled turns merging of adjacent commands on or off.
func WithMergeEnabled(enabled bool) Option {
	return func(h *History) {
		h.mergeEnabled = enabled
	}
}

// WithPublisher sets where history notifications are published.
func WithPublisher(p Publisher) Option {
	return func(h *History) {
		h.pub = p
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		h.now = now
	}
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int, opts ...Option) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{
		maxEntries:   maxEntries,
		mergeEnabled: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push records an already applied command. If the top entry absorbs it,
// merged is true and cmd must not be used again. Pushing always clears the
// redo stack.
func (h *History) Push(cmd Command) (merged bool, err error) {
	if cmd == nil || !cmd.IsValid() {
		return false, ErrInvalidCommand
	}

	h.mu.Lock()
	if h.grouping {
		merged = h.pushGroupLocked(cmd)
		h.mu.Unlock()
		return merged, nil
	}
	entry, merged := h.pushLocked(cmd)
	info := entry.info()
	h.mu.Unlock()

	if merged {
		h.publish(TopicMerged, info)
	} else {
		h.publish(TopicPushed, info)
	}
	return merged, nil
}

func (h *History) pushGroupLocked(cmd Command) bool {
	if h.mergeEnabled && len(h.groupCmds) > 0 {
		if h.groupCmds[len(h.groupCmds)-1].MergeWith(cmd) {
			return true
		}
	}
	h.groupCmds = append(h.groupCmds, cmd)
	return false
}

// pushLocked adds or merges a command without acquiring the lock.
func (h *History) pushLocked(cmd Command) (*undoEntry, bool) {
	now := h.now()

	// Clear redo stack
	h.redoStack = nil

	if top := h.topLocked(); top != nil && h.canMergeLocked(top, now) && top.command.MergeWith(cmd) {
		top.updated = now
		top.merges++
		return top, true
	}

	entry := &undoEntry{
		command:   cmd,
		timestamp: now,
		updated:   now,
		merges:    1,
	}
	h.undoStack = append(h.undoStack, entry)

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	return entry, false
}

func (h *History) topLocked() *undoEntry {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

func (h *History) canMergeLocked(top *undoEntry, now time.Time) bool {
	if !h.mergeEnabled {
		return false
	}
	return h.mergeWindow <= 0 || now.Sub(top.updated) <= h.mergeWindow
}

// Undo undoes the last command.
// The lock is released while the command runs so that notification
// handlers may inspect the history.
func (h *History) Undo() error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		err = fmt.Errorf("undo %q: %w", entry.command.Description(), err)
		h.publishFailure(entry, err)
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	h.publish(TopicUndone, entry.info())
	return nil
}

// Redo redoes the last undone command.
func (h *History) Redo() error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Redo(); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		err = fmt.Errorf("redo %q: %w", entry.command.Description(), err)
		h.publishFailure(entry, err)
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	h.publish(TopicRedone, entry.info())
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(entries []*undoEntry) []OperationInfo {
	result := make([]OperationInfo, len(entries))
	for i, entry := range entries {
		result[i] = entry.info()
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	top := h.topLocked()
	if top == nil {
		return OperationInfo{}, false
	}
	return top.info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// SetMergeWindow changes the merge window. Zero means no limit.
func (h *History) SetMergeWindow(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mergeWindow = d
}

// MergeWindow returns the merge window.
func (h *History) MergeWindow() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mergeWindow
}

// SetMergeEnabled turns merging on or off.
func (h *History) SetMergeEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mergeEnabled = enabled
}

func (h *History) publish(topic event.Topic, info OperationInfo) {
	if h.pub != nil {
		h.pub.Publish(topic, info)
	}
}

func (h *History) publishFailure(entry *undoEntry, err error) {
	info := entry.info()
	info.Err = err
	h.publish(TopicFailed, info)
}

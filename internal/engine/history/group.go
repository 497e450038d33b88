package history

import (
	"errors"
	"fmt"
)

// BeginGroup starts a command group.
// Commands pushed while grouping will be combined into a single undo unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are combined into a CompoundCommand.
func (h *History) EndGroup() {
	h.mu.Lock()

	if !h.grouping {
		h.mu.Unlock()
		return
	}

	h.grouping = false
	cmds := h.groupCmds
	h.groupCmds = nil

	if len(cmds) == 0 {
		h.mu.Unlock()
		return
	}

	compound := NewCompoundCommand(h.groupName, cmds...)
	entry, _ := h.pushLocked(compound)
	info := entry.info()
	h.mu.Unlock()

	h.publish(TopicPushed, info)
}

// CancelGroup ends a command group without adding it to history and undoes
// the commands pushed since BeginGroup, newest first.
func (h *History) CancelGroup() error {
	h.mu.Lock()
	if !h.grouping {
		h.mu.Unlock()
		return ErrNotGrouping
	}
	cmds := h.groupCmds
	h.grouping = false
	h.groupCmds = nil
	h.mu.Unlock()

	var errs []error
	for i := len(cmds) - 1; i >= 0; i-- {
		if err := cmds[i].Undo(); err != nil {
			errs = append(errs, fmt.Errorf("cancel %q: %w", cmds[i].Description(), err))
		}
	}
	return errors.Join(errs...)
}

// IsGrouping returns true if currently in a command group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// GroupScope provides a convenient way to group commands using defer.
// Usage:
//
//	func alignAll(h *History) {
//	    defer h.GroupScope("Align").End()
//	    // ... multiple pushes ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope, undoing its commands.
func (g *GroupScope) Cancel() error {
	if !g.active {
		return nil
	}
	g.active = false
	return g.history.CancelGroup()
}

// Transaction executes a function within a grouped undo context.
// If the function returns an error, the group is cancelled and its commands
// undone. Otherwise, the group is ended normally.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		if cerr := h.CancelGroup(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}

	h.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes all operations since the checkpoint.
func (h *History) UndoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes all operations up to the checkpoint depth.
// Note: This only works if the redo stack has the operations.
func (h *History) RedoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(); err != nil {
			return err
		}
	}
	return nil
}

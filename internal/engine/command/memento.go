package command

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

// Memento pairs a live annotation with owned snapshots of its state after
// (redo) and before (undo) an edit.
type Memento struct {
	target *annotation.Annotation
	owner  *annotation.File
	redo   *annotation.Annotation
	undo   *annotation.Annotation
}

func newMemento(target, redo, undo *annotation.Annotation) *Memento {
	return &Memento{
		target: target,
		owner:  target.File(),
		redo:   redo,
		undo:   undo,
	}
}

// ID returns the identity of the annotation the memento describes.
func (m *Memento) ID() uuid.UUID {
	return m.target.ID()
}

// Target returns the live annotation.
func (m *Memento) Target() *annotation.Annotation {
	return m.target
}

// RedoState returns a copy of the state applied by redo.
func (m *Memento) RedoState() *annotation.Annotation {
	return m.redo.Clone()
}

// UndoState returns a copy of the state applied by undo.
func (m *Memento) UndoState() *annotation.Annotation {
	return m.undo.Clone()
}

// resolve returns the live annotation, or ErrStaleReference if it was
// captured from a file that no longer holds it.
func (m *Memento) resolve() (*annotation.Annotation, error) {
	if m.owner != nil && !m.owner.Contains(m.target) {
		return nil, fmt.Errorf("%w: %s no longer in %q", ErrStaleReference, m.target, m.owner.Name())
	}
	return m.target, nil
}

func sortMementos(ms []*Memento) {
	slices.SortFunc(ms, func(a, b *Memento) int { return compareIDs(a.ID(), b.ID()) })
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

// GroupMemento records the group membership touched by a group operation.
type GroupMemento struct {
	// Key is the group the operation acts on.
	Key annotation.GroupKey
	// UndoKey is the group restored by undo.
	UndoKey annotation.GroupKey

	members []groupMember
}

type groupMember struct {
	target  *annotation.Annotation
	owner   *annotation.File
	redoKey annotation.GroupKey
	undoKey annotation.GroupKey
}

func newGroupMember(target *annotation.Annotation, redoKey, undoKey annotation.GroupKey) groupMember {
	return groupMember{
		target:  target,
		owner:   target.File(),
		redoKey: redoKey,
		undoKey: undoKey,
	}
}

// IsValid reports whether the memento names a real group.
func (g *GroupMemento) IsValid() bool {
	return g != nil && g.Key.IsValid()
}

// Members returns the annotations whose membership the operation changes.
func (g *GroupMemento) Members() []*annotation.Annotation {
	out := make([]*annotation.Annotation, len(g.members))
	for i, m := range g.members {
		out[i] = m.target
	}
	return out
}

func (g *GroupMemento) ids() []uuid.UUID {
	ids := make([]uuid.UUID, len(g.members))
	for i, m := range g.members {
		ids[i] = m.target.ID()
	}
	return ids
}

func (g *GroupMemento) sortMembers() {
	slices.SortFunc(g.members, func(a, b groupMember) int {
		return compareIDs(a.target.ID(), b.target.ID())
	})
}

func (g *GroupMemento) apply(redo bool) error {
	for _, m := range g.members {
		if m.owner != nil && !m.owner.Contains(m.target) {
			return fmt.Errorf("%w: %s no longer in %q", ErrStaleReference, m.target, m.owner.Name())
		}
	}
	for _, m := range g.members {
		if redo {
			m.target.Group = m.redoKey
		} else {
			m.target.Group = m.undoKey
		}
	}
	return nil
}

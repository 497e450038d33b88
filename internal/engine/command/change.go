package command

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

// change is the mode-specific payload of a command. Exactly one
// implementation backs each configured command.
type change interface {
	apply(redo bool) error
	ids() []uuid.UUID
	targets() []*annotation.Annotation
	absorb(other change) bool
	valid() bool
	count() int
}

// copyFunc copies the fields edited by one mode from src into dst.
type copyFunc func(dst, src *annotation.Annotation)

// propertyChange edits attributes of annotations in place.
type propertyChange struct {
	copyFields copyFunc
	mementos   []*Memento
}

func newPropertyChange(copyFields copyFunc, mementos []*Memento) *propertyChange {
	sortMementos(mementos)
	return &propertyChange{copyFields: copyFields, mementos: mementos}
}

func (c *propertyChange) apply(redo bool) error {
	live := make([]*annotation.Annotation, len(c.mementos))
	for i, m := range c.mementos {
		a, err := m.resolve()
		if err != nil {
			return err
		}
		live[i] = a
	}
	for i, m := range c.mementos {
		src := m.undo
		if redo {
			src = m.redo
		}
		c.copyFields(live[i], src)
	}
	return nil
}

func (c *propertyChange) ids() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.mementos))
	for i, m := range c.mementos {
		ids[i] = m.ID()
	}
	return ids
}

func (c *propertyChange) targets() []*annotation.Annotation {
	out := make([]*annotation.Annotation, len(c.mementos))
	for i, m := range c.mementos {
		out[i] = m.target
	}
	return out
}

// absorb keeps the receiver's undo snapshots and takes over the redo
// snapshots of other, leaving other empty.
func (c *propertyChange) absorb(other change) bool {
	o, ok := other.(*propertyChange)
	if !ok || len(o.mementos) != len(c.mementos) {
		return false
	}
	for i, m := range c.mementos {
		if m.target != o.mementos[i].target {
			return false
		}
	}
	for i, m := range c.mementos {
		m.redo = o.mementos[i].redo
		o.mementos[i].redo = nil
	}
	o.mementos = nil
	return true
}

func (c *propertyChange) valid() bool { return len(c.mementos) > 0 }

func (c *propertyChange) count() int { return len(c.mementos) }

// collectionEntry records one annotation added to or removed from a file.
type collectionEntry struct {
	file   *annotation.File
	target *annotation.Annotation
	index  int
}

// collectionChange adds annotations to files (insert) or removes them.
// Entries are kept in the order they were applied; undo walks them in
// reverse so that recorded indices are restored exactly.
type collectionChange struct {
	insert  bool
	entries []collectionEntry
}

func (c *collectionChange) apply(redo bool) error {
	order := slices.Clone(c.entries)
	if !redo {
		slices.Reverse(order)
	}
	inserting := redo == c.insert

	for _, e := range order {
		if err := checkEntry(e, inserting); err != nil {
			return err
		}
	}

	for i, e := range order {
		if err := applyEntry(e, inserting); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = applyEntry(order[j], !inserting)
			}
			return err
		}
	}
	return nil
}

func checkEntry(e collectionEntry, inserting bool) error {
	if inserting {
		if owner := e.target.File(); owner != nil {
			return fmt.Errorf("%w: %s already in %q", ErrStaleReference, e.target, owner.Name())
		}
		if _, ok := e.file.Lookup(e.target.ID()); ok {
			return fmt.Errorf("%w: %q already holds %s", ErrStaleReference, e.file.Name(), e.target.ID())
		}
		return nil
	}
	if !e.file.Contains(e.target) {
		return fmt.Errorf("%w: %s no longer in %q", ErrStaleReference, e.target, e.file.Name())
	}
	return nil
}

func applyEntry(e collectionEntry, inserting bool) error {
	if inserting {
		return e.file.Insert(min(e.index, e.file.Len()), e.target)
	}
	_, _, err := e.file.Remove(e.target.ID())
	return err
}

func (c *collectionChange) ids() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.target.ID()
	}
	return ids
}

func (c *collectionChange) targets() []*annotation.Annotation {
	out := make([]*annotation.Annotation, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.target
	}
	return out
}

// absorb always fails: collection edits are never folded together.
func (c *collectionChange) absorb(change) bool { return false }

func (c *collectionChange) valid() bool { return len(c.entries) > 0 }

func (c *collectionChange) count() int { return len(c.entries) }

// groupChange re-keys the members of a group.
type groupChange struct {
	memento *GroupMemento
}

func (c *groupChange) apply(redo bool) error {
	return c.memento.apply(redo)
}

func (c *groupChange) ids() []uuid.UUID { return c.memento.ids() }

func (c *groupChange) targets() []*annotation.Annotation { return c.memento.Members() }

func (c *groupChange) absorb(other change) bool {
	o, ok := other.(*groupChange)
	if !ok || !c.memento.Key.SameGroup(o.memento.Key) {
		return false
	}
	mine, theirs := c.memento.members, o.memento.members
	if len(mine) != len(theirs) {
		return false
	}
	for i := range mine {
		if mine[i].target != theirs[i].target {
			return false
		}
	}
	for i := range mine {
		mine[i].redoKey = theirs[i].redoKey
	}
	o.memento.members = nil
	return true
}

func (c *groupChange) valid() bool { return c.memento.IsValid() }

func (c *groupChange) count() int { return len(c.memento.members) }

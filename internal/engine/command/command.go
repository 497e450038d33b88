package command

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/engine/history"
)

// Command is a reversible annotation edit.
//
// A command is created unconfigured and configured by exactly one SetMode
// call, which captures the before and after states and applies the edit to
// the live annotations. The command is then handed to a history.History,
// which drives Undo and Redo and may fold later commands into it.
type Command struct {
	mode        Mode
	description string
	change      change

	// signature is the sorted set of annotation identities, fixed when the
	// command is configured.
	signature []uuid.UUID
}

var _ history.Command = (*Command)(nil)

// New returns an unconfigured command.
func New() *Command {
	return &Command{}
}

// Mode returns the mode the command was configured with.
func (c *Command) Mode() Mode {
	return c.mode
}

// Description returns a human-readable description of the command.
func (c *Command) Description() string {
	if c.description != "" {
		return c.description
	}
	return c.mode.GuiName()
}

// SetDescription overrides the default description.
func (c *Command) SetDescription(description string) {
	c.description = description
}

// IsValid reports whether the command captured anything to undo.
func (c *Command) IsValid() bool {
	return c.change != nil && c.change.valid()
}

// Count returns the number of annotations the command affects.
func (c *Command) Count() int {
	if c.change == nil {
		return 0
	}
	return c.change.count()
}

// Signature returns the sorted identities of the affected annotations.
func (c *Command) Signature() []uuid.UUID {
	return slices.Clone(c.signature)
}

// Annotations returns the live annotations the command affects.
func (c *Command) Annotations() []*annotation.Annotation {
	if c.change == nil {
		return nil
	}
	return c.change.targets()
}

// Mementos returns the property mementos of the command, ordered by identity.
// Commands that change a collection or group membership have none.
func (c *Command) Mementos() []*Memento {
	if pc, ok := c.change.(*propertyChange); ok {
		return slices.Clone(pc.mementos)
	}
	return nil
}

// GroupMemento returns the group memento of a grouping command, or nil.
func (c *Command) GroupMemento() *GroupMemento {
	if gc, ok := c.change.(*groupChange); ok {
		return gc.memento
	}
	return nil
}

// Redo applies the after state. Nothing is changed if any referenced
// annotation is stale.
func (c *Command) Redo() error {
	if !c.IsValid() {
		return fmt.Errorf("redo %s: %w", c.mode, ErrInvalidCommand)
	}
	if err := c.change.apply(true); err != nil {
		return fmt.Errorf("redo %s: %w", c.mode, err)
	}
	return nil
}

// Undo applies the before state. Nothing is changed if any referenced
// annotation is stale.
func (c *Command) Undo() error {
	if !c.IsValid() {
		return fmt.Errorf("undo %s: %w", c.mode, ErrInvalidCommand)
	}
	if err := c.change.apply(false); err != nil {
		return fmt.Errorf("undo %s: %w", c.mode, err)
	}
	return nil
}

// MergeWith folds other into c when both have the same mode and affect
// exactly the same annotations (and, for grouping, the same group). c keeps
// its before state and takes over the after state of other, which is left
// empty and invalid.
//
// Commands that add or remove annotations never merge.
func (c *Command) MergeWith(other history.Command) bool {
	o, ok := other.(*Command)
	if !ok || o == c || !c.IsValid() || !o.IsValid() {
		return false
	}
	if c.mode != o.mode || !slices.Equal(c.signature, o.signature) {
		return false
	}
	if !c.change.absorb(o.change) {
		return false
	}
	o.change = nil
	o.signature = nil
	return true
}

func (c *Command) checkUnconfigured() error {
	if c.mode != ModeInvalid {
		return fmt.Errorf("%w: %s", ErrModeAlreadySet, c.mode)
	}
	return nil
}

// configure records the mode and payload and fixes the identity signature.
// A description set before configuration is kept.
func (c *Command) configure(mode Mode, description string, ch change) {
	c.mode = mode
	c.change = ch
	if c.description == "" {
		c.description = description
	}
	ids := ch.ids()
	slices.SortFunc(ids, compareIDs)
	c.signature = ids
}

func (c *Command) String() string {
	return fmt.Sprintf("%s (%d annotations)", c.Description(), c.Count())
}

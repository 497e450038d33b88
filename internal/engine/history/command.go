package history

import (
	"errors"
	"fmt"
)

// Command is a reversible edit that has already been applied when pushed.
type Command interface {
	// Redo reapplies the edit.
	Redo() error

	// Undo reverses the edit.
	Undo() error

	// MergeWith folds other into the receiver and reports whether it did.
	// After a successful merge other must be discarded.
	MergeWith(other Command) bool

	// IsValid reports whether the command captured anything to undo.
	IsValid() bool

	// Description returns a human-readable description of the command.
	Description() string
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Redo runs all commands in order.
func (c *CompoundCommand) Redo() error {
	for i, cmd := range c.Commands {
		if err := cmd.Redo(); err != nil {
			// On error, try to undo what we've done
			var rollback []error
			for j := i - 1; j >= 0; j-- {
				if uerr := c.Commands[j].Undo(); uerr != nil {
					rollback = append(rollback, uerr)
				}
			}
			err = fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
			return errors.Join(append([]error{err}, rollback...)...)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo() error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(); err != nil {
			// Put back what was already undone
			var rollback []error
			for j := i + 1; j < len(c.Commands); j++ {
				if rerr := c.Commands[j].Redo(); rerr != nil {
					rollback = append(rollback, rerr)
				}
			}
			err = fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
			return errors.Join(append([]error{err}, rollback...)...)
		}
	}
	return nil
}

// MergeWith always returns false; compound commands are closed units.
func (c *CompoundCommand) MergeWith(Command) bool {
	return false
}

// IsValid returns true if the compound command holds only valid commands.
func (c *CompoundCommand) IsValid() bool {
	if len(c.Commands) == 0 {
		return false
	}
	for _, cmd := range c.Commands {
		if cmd == nil || !cmd.IsValid() {
			return false
		}
	}
	return true
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

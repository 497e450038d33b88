package history

import "errors"

// Common errors for history operations.
var (
	// ErrNothingToUndo is returned by Undo when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrInvalidCommand is returned when a nil or unconfigured command is pushed.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrNotGrouping is returned when a group operation is used outside a group.
	ErrNotGrouping = errors.New("no active group")
)

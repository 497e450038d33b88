// Package history provides the undo/redo stack for annotation edits.
//
// Commands are applied by their creator before they are pushed; the stack
// only records them and later drives Undo and Redo.
//
// # Commands
//
// A Command implements Redo, Undo, MergeWith, IsValid and Description.
// Invalid commands are rejected by Push.
//
// # Merging
//
// When a command is pushed, the command on top of the undo stack is asked to
// absorb it through MergeWith. If it agrees, the pushed command is discarded
// and the top entry now spans both edits. This folds continuous edits such
// as a drag into a single undo step. Merging only ever considers the top
// entry, and may be limited to a time window measured from the last time
// the top entry changed:
//
//	h := history.NewHistory(500, history.WithMergeWindow(time.Second))
//	merged, err := h.Push(cmd)
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("Align Annotations")
//	// ... several pushes ...
//	h.EndGroup()
//
// CancelGroup undoes the commands pushed since BeginGroup and discards them.
//
// # Failures
//
// If Undo or Redo of a command fails, the entry stays where it was and the
// error is returned. Callers should stop traversing history at that point.
package history

// Package command implements reversible annotation edits.
//
// A Command is configured with exactly one SetMode call. Most modes edit
// attributes of existing annotations: the call records a snapshot of each
// annotation before the edit, applies the new value to the live annotation
// and records a snapshot after it. Undo and Redo copy the fields edited by
// the mode from those snapshots back into the live annotations; other fields
// are left alone.
//
//	cmd := command.New()
//	if err := cmd.SetModeTextCharacters("Left hemisphere", selected); err != nil {
//	    return err
//	}
//	merged, err := hist.Push(cmd)
//
// Create, paste and duplicate add annotations to a file, and delete and cut
// remove them. Group, ungroup and regroup change the group key of the member
// annotations.
//
// # Merging
//
// MergeWith folds a newer command into an older one when both have the same
// mode and affect exactly the same set of annotations. The older command
// keeps its before snapshots and takes over the newer after snapshots, so a
// drag made of many small moves undoes in one step. Commands that add or
// remove annotations never merge.
//
// # Stale references
//
// A command remembers which file held each annotation when it was captured.
// If the annotation has since been removed from that file by something other
// than the command, Redo and Undo fail with ErrStaleReference without
// changing anything.
package command

package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

// SetModeCreateAnnotation appends a new annotation to file.
func (c *Command) SetModeCreateAnnotation(file *annotation.File, a *annotation.Annotation) error {
	if file == nil {
		return ErrNilFile
	}
	return c.setInsert(ModeCreateAnnotation, "Create Annotation", file, []*annotation.Annotation{a}, nil)
}

// SetModePasteAnnotations appends copies of the clipboard annotations to
// file and returns the pasted copies. Each paste gets new identities, so the
// same clipboard can be pasted repeatedly.
func (c *Command) SetModePasteAnnotations(file *annotation.File, clipboard []*annotation.Annotation) ([]*annotation.Annotation, error) {
	if file == nil {
		return nil, ErrNilFile
	}
	if err := checkAnnotations(clipboard); err != nil {
		return nil, err
	}
	pasted := make([]*annotation.Annotation, len(clipboard))
	for i, a := range clipboard {
		pasted[i] = a.Duplicate()
	}
	if err := c.setInsert(ModePasteAnnotation, "Paste Annotations", file, pasted, nil); err != nil {
		return nil, err
	}
	return pasted, nil
}

// SetModeDuplicateAnnotation inserts a copy of source into file directly
// after source, or at the end if file does not hold source, and returns the
// copy.
func (c *Command) SetModeDuplicateAnnotation(file *annotation.File, source *annotation.Annotation) (*annotation.Annotation, error) {
	if file == nil {
		return nil, ErrNilFile
	}
	if source == nil {
		return nil, ErrNilAnnotation
	}
	index := file.Len()
	if file.Contains(source) {
		index = file.IndexOf(source.ID()) + 1
	}
	dup := source.Duplicate()
	if err := c.setInsert(ModeDuplicateAnnotation, "Duplicate Annotation", file, []*annotation.Annotation{dup}, []int{index}); err != nil {
		return nil, err
	}
	return dup, nil
}

// setInsert adds anns to file, appending unless indices are given.
func (c *Command) setInsert(mode Mode, description string, file *annotation.File, anns []*annotation.Annotation, indices []int) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if err := checkAnnotations(anns); err != nil {
		return err
	}
	seen := make(map[uuid.UUID]bool, len(anns))
	for _, a := range anns {
		if owner := a.File(); owner != nil {
			return fmt.Errorf("%w: %s is in %q", ErrAlreadyInFile, a, owner.Name())
		}
		if _, ok := file.Lookup(a.ID()); ok || seen[a.ID()] {
			return fmt.Errorf("%w: %q already holds %s", ErrAlreadyInFile, file.Name(), a.ID())
		}
		seen[a.ID()] = true
	}

	entries := make([]collectionEntry, 0, len(anns))
	for i, a := range anns {
		index := file.Len()
		if indices != nil {
			index = min(indices[i], file.Len())
		}
		if err := file.Insert(index, a); err != nil {
			rollback(entries, true)
			return err
		}
		entries = append(entries, collectionEntry{file: file, target: a, index: index})
	}

	c.configure(mode, description, &collectionChange{insert: true, entries: entries})
	return nil
}

// SetModeDeleteAnnotations removes annotations from the files that hold them.
func (c *Command) SetModeDeleteAnnotations(anns []*annotation.Annotation) error {
	return c.setRemove(ModeDeleteAnnotations, "Delete Annotations", anns)
}

// SetModeCutAnnotations removes annotations like delete; callers keep the
// removed annotations as clipboard contents.
func (c *Command) SetModeCutAnnotations(anns []*annotation.Annotation) error {
	return c.setRemove(ModeCutAnnotation, "Cut Annotations", anns)
}

func (c *Command) setRemove(mode Mode, description string, anns []*annotation.Annotation) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if err := checkAnnotations(anns); err != nil {
		return err
	}
	for _, a := range anns {
		if owner := a.File(); owner == nil || !owner.Contains(a) {
			return fmt.Errorf("%w: %s", ErrNotInFile, a)
		}
	}

	entries := make([]collectionEntry, 0, len(anns))
	seen := make(map[uuid.UUID]bool, len(anns))
	for _, a := range anns {
		if seen[a.ID()] {
			continue
		}
		seen[a.ID()] = true

		file := a.File()
		index, _, err := file.Remove(a.ID())
		if err != nil {
			rollback(entries, false)
			return err
		}
		entries = append(entries, collectionEntry{file: file, target: a, index: index})
	}

	c.configure(mode, description, &collectionChange{insert: false, entries: entries})
	return nil
}

// rollback reverts entries applied during configuration, newest first.
func rollback(entries []collectionEntry, inserted bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		_ = applyEntry(entries[i], !inserted)
	}
}

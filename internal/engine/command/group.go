package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

// SetModeGroupingGroup places annotations into the user group key. Each
// annotation remembers its previous group, which undo restores.
func (c *Command) SetModeGroupingGroup(key annotation.GroupKey, anns []*annotation.Annotation) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if key.Type != annotation.GroupUser {
		return fmt.Errorf("%w: group needs a user key, got %s", ErrInvalidGroupKey, key)
	}
	if err := checkAnnotations(anns); err != nil {
		return err
	}

	var members []groupMember
	seen := make(map[uuid.UUID]bool, len(anns))
	for _, a := range anns {
		if seen[a.ID()] {
			continue
		}
		seen[a.ID()] = true
		members = append(members, newGroupMember(a, key, a.Group))
	}
	if len(members) < 2 {
		return fmt.Errorf("%w: grouping needs at least 2 annotations", ErrEmptyGroup)
	}

	return c.setGroup(ModeGroupingGroup, key, key, members)
}

// SetModeGroupingUngroup dissolves the user group key in file. Members move
// to the space group of their own window and remember key, window included,
// so they can be regrouped.
func (c *Command) SetModeGroupingUngroup(file *annotation.File, key annotation.GroupKey) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if file == nil {
		return ErrNilFile
	}
	if key.Type != annotation.GroupUser {
		return fmt.Errorf("%w: ungroup needs a user key, got %s", ErrInvalidGroupKey, key)
	}

	anns := file.InGroup(key)
	if len(anns) == 0 {
		return fmt.Errorf("%w: %s has no members in %q", ErrEmptyGroup, key, file.Name())
	}
	members := make([]groupMember, len(anns))
	for i, a := range anns {
		members[i] = newGroupMember(a, annotation.SpaceGroupKey(a, key), a.Group)
	}

	return c.setGroup(ModeGroupingUngroup, key, key, members)
}

// SetModeGroupingRegroup restores the user group key for the annotations in
// file that were ungrouped from it.
func (c *Command) SetModeGroupingRegroup(file *annotation.File, key annotation.GroupKey) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if file == nil {
		return ErrNilFile
	}
	if key.Type != annotation.GroupUser {
		return fmt.Errorf("%w: regroup needs a user key, got %s", ErrInvalidGroupKey, key)
	}

	anns := file.Filter(func(a *annotation.Annotation) bool {
		return a.Group.UngroupedFrom(key)
	})
	if len(anns) == 0 {
		return fmt.Errorf("%w: nothing was ungrouped from %s in %q", ErrEmptyGroup, key, file.Name())
	}
	members := make([]groupMember, len(anns))
	for i, a := range anns {
		members[i] = newGroupMember(a, key, a.Group)
	}

	undoKey := anns[0].Group
	return c.setGroup(ModeGroupingRegroup, key, undoKey, members)
}

func (c *Command) setGroup(mode Mode, key, undoKey annotation.GroupKey, members []groupMember) error {
	gm := &GroupMemento{Key: key, UndoKey: undoKey, members: members}
	gm.sortMembers()
	for _, m := range gm.members {
		m.target.Group = m.redoKey
	}
	c.configure(mode, mode.GuiName(), &groupChange{memento: gm})
	return nil
}

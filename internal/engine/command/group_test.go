package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/annotate/internal/annotation"
)

func TestGroup_RoundTripRestoresInvalidKey(t *testing.T) {
	f := newFixture(t)
	spaceKey := annotation.SpaceGroupKey(f.line, annotation.GroupKey{})
	f.line.Group = spaceKey
	require.False(t, f.box.Group.IsValid())

	key := annotation.UserGroupKey(0, 7)
	cmd := New()
	require.NoError(t, cmd.SetModeGroupingGroup(key, []*annotation.Annotation{f.box, f.line}))
	assert.Equal(t, key, f.box.Group)
	assert.Equal(t, key, f.line.Group)
	assert.Equal(t, "Group Annotations", cmd.Description())

	gm := cmd.GroupMemento()
	require.NotNil(t, gm)
	assert.True(t, gm.IsValid())
	assert.ElementsMatch(t, []*annotation.Annotation{f.box, f.line}, gm.Members())

	require.NoError(t, cmd.Undo())
	assert.Equal(t, annotation.GroupKey{}, f.box.Group)
	assert.Equal(t, spaceKey, f.line.Group)

	require.NoError(t, cmd.Redo())
	assert.Equal(t, key, f.box.Group)
}

func TestUngroupRegroup(t *testing.T) {
	f := newFixture(t)
	key := annotation.UserGroupKey(0, 3)

	group := New()
	require.NoError(t, group.SetModeGroupingGroup(key, []*annotation.Annotation{f.box, f.text}))

	ungroup := New()
	require.NoError(t, ungroup.SetModeGroupingUngroup(f.file, key))
	assert.Equal(t, annotation.GroupSpace, f.box.Group.Type)
	assert.Equal(t, 3, f.box.Group.UserGroupID)
	assert.Empty(t, f.file.InGroup(key))

	regroup := New()
	require.NoError(t, regroup.SetModeGroupingRegroup(f.file, key))
	assert.Equal(t, key, f.box.Group)
	assert.Equal(t, key, f.text.Group)
	assert.Equal(t, ModeGroupingRegroup, regroup.Mode())

	require.NoError(t, regroup.Undo())
	assert.Equal(t, annotation.GroupSpace, f.text.Group.Type)

	require.NoError(t, ungroup.Undo())
	assert.Equal(t, key, f.box.Group)

	require.NoError(t, group.Undo())
	assert.False(t, f.box.Group.IsValid())
	assert.False(t, f.text.Group.IsValid())
}

func TestRegroup_NothingUngrouped(t *testing.T) {
	f := newFixture(t)
	cmd := New()
	err := cmd.SetModeGroupingRegroup(f.file, annotation.UserGroupKey(0, 9))
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestGroup_MergeRequiresSameKey(t *testing.T) {
	f := newFixture(t)
	anns := []*annotation.Annotation{f.box, f.line}

	a := New()
	require.NoError(t, a.SetModeGroupingGroup(annotation.UserGroupKey(0, 1), anns))
	b := New()
	require.NoError(t, b.SetModeGroupingGroup(annotation.UserGroupKey(0, 2), anns))
	assert.False(t, a.MergeWith(b))

	c := New()
	require.NoError(t, c.SetModeGroupingGroup(annotation.UserGroupKey(0, 1), anns))
	assert.True(t, a.MergeWith(c))

	require.NoError(t, a.Undo())
	assert.False(t, f.box.Group.IsValid())
}

func TestGroup_StaleMember(t *testing.T) {
	f := newFixture(t)
	cmd := New()
	require.NoError(t, cmd.SetModeGroupingGroup(annotation.UserGroupKey(0, 1), []*annotation.Annotation{f.box, f.line}))

	_, _, err := f.file.Remove(f.line.ID())
	require.NoError(t, err)
	assert.ErrorIs(t, cmd.Undo(), ErrStaleReference)
	assert.True(t, f.box.Group.IsValid())
}

func TestUngroupRegroup_KeyInOtherWindow(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 0, f.box.WindowIndex)
	key := annotation.UserGroupKey(1, 7)

	group := New()
	require.NoError(t, group.SetModeGroupingGroup(key, []*annotation.Annotation{f.box, f.text}))

	ungroup := New()
	require.NoError(t, ungroup.SetModeGroupingUngroup(f.file, key))
	assert.Equal(t, annotation.GroupSpace, f.box.Group.Type)
	assert.Equal(t, 0, f.box.Group.WindowIndex, "space group follows the annotation's window")
	assert.Equal(t, 1, f.box.Group.UserWindowIndex)

	other := New()
	err := other.SetModeGroupingRegroup(f.file, annotation.UserGroupKey(0, 7))
	assert.ErrorIs(t, err, ErrEmptyGroup, "same id in another window is a different group")

	regroup := New()
	require.NoError(t, regroup.SetModeGroupingRegroup(f.file, key))
	assert.Equal(t, key, f.box.Group)
	assert.Equal(t, key, f.text.Group)

	require.NoError(t, regroup.Undo())
	assert.True(t, f.box.Group.UngroupedFrom(key))
}

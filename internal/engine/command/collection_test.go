package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/annotate/internal/annotation"
)

func TestCreate_UndoRedoSymmetry(t *testing.T) {
	file := annotation.NewFile("scene", nil)
	a := annotation.New(annotation.KindBox)
	a.Name = "A"

	cmd := New()
	require.NoError(t, cmd.SetModeCreateAnnotation(file, a))
	assert.Equal(t, []string{"A"}, fileNames(file))
	assert.Equal(t, "Create Annotation", cmd.Description())

	require.NoError(t, cmd.Undo())
	assert.Empty(t, fileNames(file))
	assert.Nil(t, a.File())

	require.NoError(t, cmd.Redo())
	assert.Equal(t, []string{"A"}, fileNames(file))
	assert.Same(t, file, a.File())

	require.NoError(t, cmd.Undo())
	assert.Empty(t, fileNames(file))
}

func TestCreate_PreservesExistingOrder(t *testing.T) {
	f := newFixture(t)
	want := fileNames(f.file)

	a := annotation.New(annotation.KindOval)
	a.Name = "new"
	cmd := New()
	require.NoError(t, cmd.SetModeCreateAnnotation(f.file, a))
	assert.Equal(t, append(want, "new"), fileNames(f.file))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, want, fileNames(f.file))
}

func TestCreate_RedoFailsWhenReaddedElsewhere(t *testing.T) {
	file := annotation.NewFile("scene", nil)
	other := annotation.NewFile("other", nil)
	a := annotation.New(annotation.KindBox)

	cmd := New()
	require.NoError(t, cmd.SetModeCreateAnnotation(file, a))
	require.NoError(t, cmd.Undo())

	_, err := other.Add(a)
	require.NoError(t, err)
	assert.ErrorIs(t, cmd.Redo(), ErrStaleReference)
	assert.Equal(t, 0, file.Len())
}

func TestDelete_RestoresPositions(t *testing.T) {
	f := newFixture(t)
	original := fileNames(f.file)

	cmd := New()
	require.NoError(t, cmd.SetModeDeleteAnnotations([]*annotation.Annotation{f.tab, f.box, f.text}))
	assert.Equal(t, []string{"line"}, fileNames(f.file))
	assert.Equal(t, 3, cmd.Count())

	require.NoError(t, cmd.Undo())
	assert.Equal(t, original, fileNames(f.file))

	require.NoError(t, cmd.Redo())
	assert.Equal(t, []string{"line"}, fileNames(f.file))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, original, fileNames(f.file))
	assert.Same(t, f.file, f.box.File())
}

func TestDelete_AcrossFiles(t *testing.T) {
	f := newFixture(t)
	other := annotation.NewFile("other", nil)
	x := annotation.New(annotation.KindBox)
	x.Name = "x"
	_, err := other.Add(x)
	require.NoError(t, err)

	cmd := New()
	require.NoError(t, cmd.SetModeDeleteAnnotations([]*annotation.Annotation{x, f.line}))
	assert.Equal(t, 0, other.Len())
	assert.Equal(t, 3, f.file.Len())

	require.NoError(t, cmd.Undo())
	assert.Same(t, other, x.File())
	assert.Same(t, f.file, f.line.File())
	assert.Equal(t, 1, f.file.IndexOf(f.line.ID()))
}

func TestDelete_UndoFailsWhenIdentityTaken(t *testing.T) {
	f := newFixture(t)

	cmd := New()
	require.NoError(t, cmd.SetModeDeleteAnnotations([]*annotation.Annotation{f.box, f.line}))

	// Something else put a copy with the same identity back in the file.
	_, err := f.file.Add(f.line.Clone())
	require.NoError(t, err)

	assert.ErrorIs(t, cmd.Undo(), ErrStaleReference)
	assert.Nil(t, f.box.File(), "no entry is restored when any is stale")
}

func TestCut_ModeAndDescription(t *testing.T) {
	f := newFixture(t)
	cmd := New()
	require.NoError(t, cmd.SetModeCutAnnotations([]*annotation.Annotation{f.text}))
	assert.Equal(t, ModeCutAnnotation, cmd.Mode())
	assert.Equal(t, "Cut Annotations", cmd.Description())
	assert.Nil(t, f.text.File())

	require.NoError(t, cmd.Undo())
	assert.Equal(t, 2, f.file.IndexOf(f.text.ID()))
}

func TestPaste_NewIdentities(t *testing.T) {
	f := newFixture(t)
	clipboard := []*annotation.Annotation{f.box.Clone(), f.text.Clone()}

	first := New()
	pasted, err := first.SetModePasteAnnotations(f.file, clipboard)
	require.NoError(t, err)
	require.Len(t, pasted, 2)
	assert.NotEqual(t, f.box.ID(), pasted[0].ID())
	assert.Equal(t, "hello", pasted[1].Text.Characters)
	assert.Equal(t, 6, f.file.Len())

	second := New()
	_, err = second.SetModePasteAnnotations(f.file, clipboard)
	require.NoError(t, err, "the same clipboard can be pasted twice")
	assert.Equal(t, 8, f.file.Len())

	require.NoError(t, second.Undo())
	require.NoError(t, first.Undo())
	assert.Equal(t, []string{"box", "line", "text", "tab"}, fileNames(f.file))
}

func TestDuplicate_InsertedAfterSource(t *testing.T) {
	f := newFixture(t)

	cmd := New()
	dup, err := cmd.SetModeDuplicateAnnotation(f.file, f.line)
	require.NoError(t, err)
	assert.NotEqual(t, f.line.ID(), dup.ID())
	assert.Equal(t, []string{"box", "line", "line", "text", "tab"}, fileNames(f.file))
	assert.Equal(t, 2, f.file.IndexOf(dup.ID()))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, 4, f.file.Len())
	require.NoError(t, cmd.Redo())
	assert.Equal(t, 2, f.file.IndexOf(dup.ID()))
}

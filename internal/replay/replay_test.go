package replay

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/engine"
	"github.com/dshills/annotate/internal/engine/command"
)

func runScript(t *testing.T, s *Script, opts ...engine.Option) (*Runner, *Report, error) {
	t.Helper()
	r, err := NewRunner(nil, opts...)
	require.NoError(t, err)
	rep, err := r.Run(context.Background(), s)
	return r, rep, err
}

func TestLoad_Drag(t *testing.T) {
	s, err := Load("testdata/drag.yaml")
	require.NoError(t, err)
	require.Len(t, s.Steps, 4)
	assert.Equal(t, annotation.KindBox, s.Steps[0].Kind)
	assert.Equal(t, float32(1), s.Steps[1].DX)
}

func TestRun_DragMergesIntoOneStep(t *testing.T) {
	s, err := Load("testdata/drag.yaml")
	require.NoError(t, err)

	r, rep, err := runScript(t, s)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Steps)
	assert.Equal(t, 2, rep.Merged)
	assert.Equal(t, 2, rep.UndoSteps)
	assert.Equal(t, "Reshape Annotations", rep.NextUndo)

	require.Len(t, rep.Files, 1)
	box := rep.Files[0].Annotations[0]
	assert.Equal(t, annotation.Coordinate{X: 13, Y: 10}, box.Start)
	assert.Equal(t, float32(40), box.Width)

	require.NoError(t, r.Engine().Undo())
	f, _ := r.Engine().File("scene")
	a, ok := f.FindByName("box")
	require.True(t, ok)
	assert.Equal(t, annotation.Coordinate{X: 10, Y: 10}, a.Start)
	assert.Equal(t, float32(annotation.DefaultWidth), a.Width)
}

func TestRun_TOMLSession(t *testing.T) {
	s, err := Load("testdata/session.toml")
	require.NoError(t, err)

	r, rep, err := runScript(t, s)
	require.NoError(t, err)
	assert.Equal(t, 11, rep.Steps)
	assert.Equal(t, 1, rep.RedoSteps)

	require.Len(t, rep.Files, 2)
	scene, notes := rep.Files[0], rep.Files[1]
	require.Len(t, scene.Annotations, 2, "the delete was undone")
	assert.Equal(t, "box", scene.Annotations[0].Name)
	assert.Equal(t, annotation.ColorRed, scene.Annotations[0].Background)
	assert.Equal(t, "user:0/4", scene.Annotations[0].Group)
	assert.Equal(t, "arrow", scene.Annotations[1].Name)
	assert.Equal(t, annotation.ColorNone, scene.Annotations[1].Background, "lines have no background")
	require.NotNil(t, scene.Annotations[1].End)

	require.Len(t, notes.Annotations, 2)
	assert.Equal(t, "hello", notes.Annotations[0].Text)
	assert.Equal(t, "box-copy", notes.Annotations[1].Name)

	f, _ := r.Engine().File("notes")
	label, ok := f.FindByName("label")
	require.True(t, ok)
	assert.True(t, label.Text.Bold)
}

func TestRun_StepError(t *testing.T) {
	s := &Script{
		Files: []string{"scene"},
		Steps: []Step{
			{Op: "create", Name: "box"},
			{Op: "rotate", Name: "box", Value: "15"},
			{Op: "rotate", Name: "ghost", Value: "15"},
			{Op: "rotate", Name: "box", Value: "30"},
		},
	}
	_, rep, err := runScript(t, s)

	var serr *StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Index)
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.Contains(t, err.Error(), "step 3 (rotate)")
	assert.Equal(t, 2, rep.Steps)
	assert.Equal(t, float32(15), rep.Files[0].Annotations[0].Rotation)
}

func TestRun_StepErrors(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want error
	}{
		{"unknown op", Step{Op: "explode", Name: "box"}, ErrUnknownOp},
		{"unknown file", Step{Op: "rotate", File: "other", Name: "box", Value: "1"}, ErrUnknownFile},
		{"bad number", Step{Op: "line-width", Name: "box", Value: "wide"}, command.ErrInvalidValue},
		{"bad flag", Step{Op: "bold", Name: "box", Value: "maybe"}, command.ErrInvalidValue},
		{"bad enum", Step{Op: "align-h", Name: "box", Value: "sideways"}, annotation.ErrUnknownValue},
		{"no targets", Step{Op: "rotate", Value: "1"}, ErrUnknownTarget},
		{"nothing to redo", Step{Op: "redo"}, nil},
		{"empty clipboard", Step{Op: "paste"}, engine.ErrEmptyClipboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Files: []string{"scene"}, Steps: []Step{{Op: "create", Name: "box"}, tt.step}}
			_, _, err := runScript(t, s)
			var serr *StepError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, 1, serr.Index)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRun_PropertyOps(t *testing.T) {
	s := &Script{
		Files: []string{"scene"},
		Steps: []Step{
			{Op: "create", Name: "box", X: 50, Y: 50},
			{Op: "create", Name: "line", Kind: annotation.KindLine},
			{Op: "create", Name: "label", Kind: annotation.KindText},
			{Op: "create", Name: "tab", Kind: annotation.KindBrowserTab},
			{Op: "move", Name: "box", X: 60, Y: 60},
			{Op: "move-end", Name: "line", X2: 3, Y2: 4},
			{Op: "move-line", Name: "line", X: 1, X2: 9},
			{Op: "bounds", Name: "box", X: 0, X2: 20, Y: 0, Y2: 10},
			{Op: "bounds-side", Name: "box", Side: "max-x", Value: "30"},
			{Op: "foreground", Name: "box", Color: annotation.ColorCustom, RGBA: [4]float32{0.5, 0.5, 0.5, 1}},
			{Op: "text-color", Name: "label", Color: annotation.ColorBlue},
			{Op: "line-width", Name: "line", Value: "2.5"},
			{Op: "arrow-start", Name: "line", Value: "true"},
			{Op: "rotate", Name: "box", Value: "45"},
			{Op: "width", Name: "label", Width: 12},
			{Op: "height", Name: "label", Height: 6},
			{Op: "text", Name: "label", Value: "hi"},
			{Op: "font-name", Name: "label", Value: "mono"},
			{Op: "font-point-size", Name: "label", Value: "18"},
			{Op: "font-percent-size", Name: "label", Value: "7.5"},
			{Op: "italic", Name: "label", Value: "true"},
			{Op: "underline", Name: "label", Value: "true"},
			{Op: "outline", Name: "label", Value: "true"},
			{Op: "align-h", Name: "label", Value: "right"},
			{Op: "align-v", Name: "label", Value: "bottom"},
			{Op: "orientation", Name: "label", Value: "stacked"},
			{Op: "connect", Name: "label", Value: "arrow"},
			{Op: "tab-background", Name: "tab", Value: "transparent"},
			{Op: "duplicate", Name: "box"},
		},
	}
	r, rep, err := runScript(t, s, engine.WithMergeEnabled(false))
	require.NoError(t, err)
	assert.Equal(t, len(s.Steps), rep.Steps)
	assert.Zero(t, rep.Merged)

	f, _ := r.Engine().File("scene")
	box, _ := f.FindByName("box")
	line, _ := f.FindByName("line")
	label, _ := f.FindByName("label")
	tab, _ := f.FindByName("tab")

	assert.Equal(t, float32(45), box.Rotation)
	assert.Equal(t, float32(30), box.Width)
	assert.Equal(t, annotation.ColorCustom, box.Foreground.Name)
	assert.Equal(t, annotation.Coordinate{X: 1}, line.Start)
	assert.Equal(t, annotation.Coordinate{X: 9}, line.End)
	assert.Equal(t, float32(2.5), line.LineWidth)
	assert.True(t, line.ArrowStart)
	assert.Equal(t, "hi", label.Text.Characters)
	assert.Equal(t, "mono", label.Text.FontName)
	assert.Equal(t, 18, label.Text.PointSize)
	assert.Equal(t, float32(7.5), label.Text.PercentSize)
	assert.True(t, label.Text.Italic && label.Text.Underline && label.Text.Outline)
	assert.Equal(t, annotation.AlignRight, label.Text.AlignH)
	assert.Equal(t, annotation.AlignBottom, label.Text.AlignV)
	assert.Equal(t, annotation.OrientationStacked, label.Text.Orientation)
	assert.Equal(t, annotation.ConnectArrow, label.Text.Connect)
	assert.Equal(t, annotation.ColorBlue, label.Text.Color.Name)
	assert.Equal(t, float32(12), label.Width)
	assert.Equal(t, float32(6), label.Height)
	assert.Equal(t, annotation.TabBackgroundTransparent, tab.TabBackground)
	assert.Equal(t, 5, f.Len())
	assert.Equal(t, 1, f.IndexOf(f.Annotations()[1].ID()))
	assert.Equal(t, "box", f.Annotations()[1].Name)

	// Every step is its own undo step and all of them unwind.
	for r.Engine().CanUndo() {
		require.NoError(t, r.Engine().Undo())
	}
	assert.Equal(t, 0, f.Len())
}

func TestRun_GroupUngroupRegroup(t *testing.T) {
	s := &Script{
		Files: []string{"scene"},
		Steps: []Step{
			{Op: "create", Name: "a"},
			{Op: "create", Name: "b"},
			{Op: "group", Targets: []string{"a", "b"}, Group: 2, Window: 1},
			{Op: "ungroup", Group: 2, Window: 1},
			{Op: "regroup", Group: 2, Window: 1},
		},
	}
	_, rep, err := runScript(t, s)
	require.NoError(t, err)
	for _, a := range rep.Files[0].Annotations {
		assert.Equal(t, "user:1/2", a.Group)
	}
}

func TestRun_CutPasteRenamesCopies(t *testing.T) {
	s := &Script{
		Files: []string{"scene"},
		Steps: []Step{
			{Op: "create", Name: "a"},
			{Op: "create", Name: "b"},
			{Op: "cut", Targets: []string{"a", "b"}},
			{Op: "paste", Name: "copy"},
		},
	}
	_, rep, err := runScript(t, s)
	require.NoError(t, err)
	anns := rep.Files[0].Annotations
	require.Len(t, anns, 2)
	assert.Equal(t, "copy-1", anns[0].Name)
	assert.Equal(t, "copy-2", anns[1].Name)
}

func TestRun_Cancelled(t *testing.T) {
	r, err := NewRunner(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Run(ctx, &Script{Files: []string{"scene"}, Steps: []Step{{Op: "undo"}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("empty.yaml", []byte("steps: []\n"))
	assert.ErrorIs(t, err, ErrInvalidScript)

	_, err = Parse("bad.yaml", []byte("files: [a]\nsteps:\n  - {op: create, kind: hexagon}\n"))
	assert.ErrorIs(t, err, annotation.ErrUnknownValue)
}

func TestReport_Write(t *testing.T) {
	s, err := Load("testdata/drag.yaml")
	require.NoError(t, err)
	_, rep, err := runScript(t, s)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))
	assert.Contains(t, buf.String(), "kind: box")
	assert.Contains(t, buf.String(), "background: none")

	var back Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *rep, back)
}

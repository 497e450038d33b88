package engine

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/config"
	"github.com/dshills/annotate/internal/engine/command"
	"github.com/dshills/annotate/internal/engine/history"
	"github.com/dshills/annotate/internal/event"
	"github.com/dshills/annotate/internal/logging"
)

func newScene(t *testing.T, e *Engine) (*annotation.File, *annotation.Annotation) {
	t.Helper()
	f, err := e.NewFile("scene")
	require.NoError(t, err)
	box := annotation.New(annotation.KindBox)
	box.Name = "box"
	_, err = f.Add(box)
	require.NoError(t, err)
	return f, box
}

func move(t *testing.T, e *Engine, a *annotation.Annotation, x float32) {
	t.Helper()
	cmd := command.New()
	require.NoError(t, cmd.SetModeCoordinateOne(annotation.Coordinate{X: x}, []*annotation.Annotation{a}))
	require.NoError(t, e.Apply(cmd))
}

func TestNewFile(t *testing.T) {
	e := New()
	f, err := e.NewFile("a")
	require.NoError(t, err)
	_, err = e.NewFile("b")
	require.NoError(t, err)

	_, err = e.NewFile("a")
	assert.ErrorIs(t, err, ErrFileExists)
	_, err = e.NewFile("")
	assert.ErrorIs(t, err, ErrEmptyName)

	got, ok := e.File("a")
	require.True(t, ok)
	assert.Same(t, f, got)
	_, ok = e.File("c")
	assert.False(t, ok)

	files := e.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a", files[0].Name())
	assert.Equal(t, "b", files[1].Name())
}

func TestApply_UndoRedo(t *testing.T) {
	e := New()
	_, box := newScene(t, e)

	assert.False(t, e.CanUndo())
	move(t, e, box, 40)
	assert.True(t, e.CanUndo())
	assert.Equal(t, "Coordinate", e.UndoDescription())

	require.NoError(t, e.Undo())
	assert.Equal(t, float32(0), box.Start.X)
	assert.True(t, e.CanRedo())
	assert.Equal(t, "Coordinate", e.RedoDescription())

	require.NoError(t, e.Redo())
	assert.Equal(t, float32(40), box.Start.X)
	assert.Empty(t, e.RedoDescription())

	assert.ErrorIs(t, e.Redo(), history.ErrNothingToRedo)
}

func TestApply_RejectsInvalid(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Apply(command.New()), history.ErrInvalidCommand)
	assert.ErrorIs(t, e.Apply(nil), command.ErrInvalidCommand)
	assert.False(t, e.CanUndo())
}

func TestApply_MergesDrag(t *testing.T) {
	e := New()
	_, box := newScene(t, e)
	for x := float32(1); x <= 5; x++ {
		move(t, e, box, x)
	}
	assert.Equal(t, 1, e.History().UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, float32(0), box.Start.X)
	assert.False(t, e.CanUndo())
}

func TestMergeDisabled(t *testing.T) {
	e := New(WithMergeEnabled(false))
	_, box := newScene(t, e)
	move(t, e, box, 1)
	move(t, e, box, 2)
	assert.Equal(t, 2, e.History().UndoCount())
}

func TestMergeWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	e := New(WithMergeWindow(time.Second), withClock(func() time.Time { return now }))
	_, box := newScene(t, e)

	move(t, e, box, 1)
	now = now.Add(500 * time.Millisecond)
	move(t, e, box, 2)
	now = now.Add(2 * time.Second)
	move(t, e, box, 3)

	assert.Equal(t, 2, e.History().UndoCount())
}

func TestMaxUndoEntries(t *testing.T) {
	e := New(WithMaxUndoEntries(2), WithMergeEnabled(false))
	_, box := newScene(t, e)
	for x := float32(1); x <= 4; x++ {
		move(t, e, box, x)
	}
	assert.Equal(t, 2, e.History().UndoCount())

	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.Equal(t, float32(2), box.Start.X)
}

func TestWithConfigAndApplyConfig(t *testing.T) {
	cfg := config.Default()
	cfg.History.MaxEntries = 3
	cfg.History.MergeEnabled = false

	e := New(WithConfig(cfg))
	_, box := newScene(t, e)
	move(t, e, box, 1)
	move(t, e, box, 2)
	assert.Equal(t, 2, e.History().UndoCount())
	assert.Equal(t, 3, e.History().MaxEntries())

	cfg.History.MergeEnabled = true
	cfg.History.MaxEntries = 10
	e.ApplyConfig(cfg)
	move(t, e, box, 3)
	assert.Equal(t, 2, e.History().UndoCount())
	assert.Equal(t, 10, e.History().MaxEntries())
}

func TestClearHistory(t *testing.T) {
	e := New()
	_, box := newScene(t, e)
	move(t, e, box, 1)
	e.ClearHistory()
	assert.False(t, e.CanUndo())
	assert.Equal(t, float32(1), box.Start.X)
}

func TestCutPaste(t *testing.T) {
	e := New()
	f, box := newScene(t, e)
	other, err := e.NewFile("other")
	require.NoError(t, err)

	_, err = e.Paste("scene")
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	require.NoError(t, e.Cut([]*annotation.Annotation{box}))
	assert.Equal(t, 0, f.Len())
	require.Len(t, e.Clipboard(), 1)

	pasted, err := e.Paste("other")
	require.NoError(t, err)
	require.Len(t, pasted, 1)
	assert.Equal(t, "box", pasted[0].Name)
	assert.NotEqual(t, box.ID(), pasted[0].ID())
	assert.Same(t, other, pasted[0].File())

	_, err = e.Paste("missing")
	assert.ErrorIs(t, err, ErrFileNotFound)

	assert.Equal(t, "Paste Annotations", e.UndoDescription())
	require.NoError(t, e.Undo())
	assert.Equal(t, 0, other.Len())
	require.NoError(t, e.Undo())
	assert.Equal(t, 1, f.Len())
	assert.Same(t, f, box.File())
}

func TestCopyDetaches(t *testing.T) {
	e := New()
	_, box := newScene(t, e)
	e.Copy([]*annotation.Annotation{box, nil})

	clip := e.Clipboard()
	require.Len(t, clip, 1)
	assert.Nil(t, clip[0].File())
	clip[0].Name = "changed"
	assert.Equal(t, "box", e.Clipboard()[0].Name)
}

func TestBusNotifications(t *testing.T) {
	bus := event.NewBus()
	var mu sync.Mutex
	var topics []event.Topic
	_, err := bus.Subscribe("**", func(ev event.Event) {
		mu.Lock()
		topics = append(topics, ev.Topic)
		mu.Unlock()
	})
	require.NoError(t, err)

	e := New(WithBus(bus))
	_, box := newScene(t, e)
	move(t, e, box, 1)
	move(t, e, box, 2)
	require.NoError(t, e.Undo())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []event.Topic{
		annotation.TopicAdded,
		history.TopicPushed,
		history.TopicMerged,
		history.TopicUndone,
	}, topics)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithLogger(logging.New(&buf, "debug", logging.FormatText)))
	_, box := newScene(t, e)
	move(t, e, box, 1)
	assert.Contains(t, buf.String(), "command applied")
	assert.Contains(t, buf.String(), "mode=COORDINATE_ONE")

	buf.Reset()
	require.NoError(t, e.Undo())
	require.NoError(t, box.File().Insert(0, annotation.New(annotation.KindOval)))
	_, _, err := box.File().Remove(box.ID())
	require.NoError(t, err)
	assert.Error(t, e.Redo())
	assert.Contains(t, buf.String(), "level=WARN")
}

// within fails the test if fn does not return in time.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("engine call did not return")
	}
}

func TestHandlersReadEngine(t *testing.T) {
	bus := event.NewBus()
	e := New(WithBus(bus))

	var mu sync.Mutex
	var menu []string
	refresh := func(ev event.Event) {
		line := fmt.Sprintf("%s|%s|%s|%t|%d",
			ev.Topic, e.UndoDescription(), e.RedoDescription(), e.CanUndo(), len(e.Files()))
		mu.Lock()
		menu = append(menu, line)
		mu.Unlock()
	}
	_, err := bus.Subscribe("history.*", refresh)
	require.NoError(t, err)
	_, err = bus.Subscribe("annotation.**", refresh)
	require.NoError(t, err)

	_, box := newScene(t, e)
	cmd := command.New()
	require.NoError(t, cmd.SetModeCoordinateOne(annotation.Coordinate{X: 5}, []*annotation.Annotation{box}))

	within(t, 2*time.Second, func() { assert.NoError(t, e.Apply(cmd)) })
	within(t, 2*time.Second, func() { assert.NoError(t, e.Undo()) })
	within(t, 2*time.Second, func() { assert.NoError(t, e.Redo()) })
	within(t, 2*time.Second, func() { assert.NoError(t, e.Cut([]*annotation.Annotation{box})) })

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"annotation.file.added|||false|1",
		"history.pushed|Coordinate||true|1",
		"history.undone||Coordinate|false|1",
		"history.redone|Coordinate||true|1",
		"annotation.file.removed|Coordinate||true|1",
		"history.pushed|Cut Annotations||true|1",
	}, menu)
}

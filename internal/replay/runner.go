package replay

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/engine"
	"github.com/dshills/annotate/internal/engine/command"
	"github.com/dshills/annotate/internal/engine/history"
	"github.com/dshills/annotate/internal/event"
	"github.com/dshills/annotate/internal/logging"
)

// Runner replays scripts against its own engine.
type Runner struct {
	engine *engine.Engine
	log    *slog.Logger
	merged int
}

// NewRunner creates a runner whose engine is built from opts. Notifications
// are published on a private bus so merges can be counted.
func NewRunner(log *slog.Logger, opts ...engine.Option) (*Runner, error) {
	if log == nil {
		log = logging.Discard()
	}
	r := &Runner{log: log}

	bus := event.NewBus(event.WithPanicHandler(func(ev event.Event, recovered any) {
		log.Error("event handler panicked", "topic", ev.Topic, "panic", recovered)
	}))
	if _, err := bus.Subscribe(history.TopicMerged, func(event.Event) { r.merged++ }); err != nil {
		return nil, err
	}

	opts = append([]engine.Option{engine.WithLogger(log)}, opts...)
	r.engine = engine.New(append(opts, engine.WithBus(bus))...)
	return r, nil
}

// Engine returns the engine the runner edits.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Run opens the script's files, if not open already, and executes its
// steps in order. It stops at the first failing step and returns a
// *StepError; the report then describes the state before that step.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	if s == nil || len(s.Files) == 0 {
		return nil, fmt.Errorf("%w: no files", ErrInvalidScript)
	}
	for _, name := range s.Files {
		if _, ok := r.engine.File(name); ok {
			continue
		}
		if _, err := r.engine.NewFile(name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
	}

	rep := &Report{}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return r.report(rep), err
		}
		r.log.Debug("replay step", "index", i, "op", step.Op, "file", step.File)
		if err := r.exec(s, step); err != nil {
			return r.report(rep), &StepError{Index: i, Op: step.Op, Err: err}
		}
		rep.Steps++
	}
	return r.report(rep), nil
}

func (r *Runner) exec(s *Script, st Step) error {
	switch st.Op {
	case "undo":
		return r.engine.Undo()
	case "redo":
		return r.engine.Redo()
	}

	name := st.File
	if name == "" {
		name = s.Files[0]
	}
	file, ok := r.engine.File(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFile, name)
	}

	switch st.Op {
	case "create":
		return r.create(file, st)
	case "paste":
		pasted, err := r.engine.Paste(file.Name())
		if err != nil {
			return err
		}
		rename(pasted, st.Name)
		return nil
	case "copy", "cut", "duplicate":
		return r.clipboardOp(file, st)
	case "ungroup", "regroup":
		cmd := command.New()
		key := annotation.UserGroupKey(st.Window, st.Group)
		var err error
		if st.Op == "ungroup" {
			err = cmd.SetModeGroupingUngroup(file, key)
		} else {
			err = cmd.SetModeGroupingRegroup(file, key)
		}
		if err != nil {
			return err
		}
		return r.engine.Apply(cmd)
	}

	targets, err := resolve(file, st)
	if err != nil {
		return err
	}
	cmd := command.New()
	if err := configure(cmd, st, targets); err != nil {
		return err
	}
	return r.engine.Apply(cmd)
}

func (r *Runner) create(file *annotation.File, st Step) error {
	a := annotation.New(st.Kind)
	a.Name = st.Name
	a.Space = st.Space
	a.Start = annotation.Coordinate{X: st.X, Y: st.Y, Z: st.Z}
	a.End = annotation.Coordinate{X: st.X2, Y: st.Y2, Z: st.Z2}
	if st.Width > 0 {
		a.Width = st.Width
	}
	if st.Height > 0 {
		a.Height = st.Height
	}
	if a.IsText() {
		a.Text.Characters = st.Value
	}

	cmd := command.New()
	if err := cmd.SetModeCreateAnnotation(file, a); err != nil {
		return err
	}
	return r.engine.Apply(cmd)
}

func (r *Runner) clipboardOp(file *annotation.File, st Step) error {
	targets, err := resolve(file, st)
	if err != nil {
		return err
	}
	switch st.Op {
	case "copy":
		r.engine.Copy(targets)
		return nil
	case "cut":
		return r.engine.Cut(targets)
	}

	cmd := command.New()
	dup, err := cmd.SetModeDuplicateAnnotation(file, targets[0])
	if err != nil {
		return err
	}
	rename([]*annotation.Annotation{dup}, st.Name)
	return r.engine.Apply(cmd)
}

// rename gives newly inserted annotations a name; numbered when several.
func rename(anns []*annotation.Annotation, name string) {
	if name == "" {
		return
	}
	if len(anns) == 1 {
		anns[0].Name = name
		return
	}
	for i, a := range anns {
		a.Name = name + "-" + strconv.Itoa(i+1)
	}
}

// resolve looks up the step's targets by name.
func resolve(file *annotation.File, st Step) ([]*annotation.Annotation, error) {
	names := st.Targets
	if len(names) == 0 && st.Name != "" {
		names = []string{st.Name}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: step names no targets", ErrUnknownTarget)
	}
	out := make([]*annotation.Annotation, len(names))
	for i, n := range names {
		a, ok := file.FindByName(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownTarget, n, file.Name())
		}
		out[i] = a
	}
	return out, nil
}

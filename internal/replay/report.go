package replay

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/annotate/internal/annotation"
)

// Report summarizes a replayed session.
type Report struct {
	Steps     int         `yaml:"steps"`
	Merged    int         `yaml:"merged"`
	UndoSteps int         `yaml:"undo_steps"`
	RedoSteps int         `yaml:"redo_steps"`
	NextUndo  string      `yaml:"next_undo,omitempty"`
	Files     []FileState `yaml:"files"`
}

// FileState lists the annotations of a file in order.
type FileState struct {
	Name        string            `yaml:"name"`
	Annotations []AnnotationState `yaml:"annotations"`
}

// AnnotationState is the printable state of one annotation.
type AnnotationState struct {
	Name       string                 `yaml:"name"`
	Kind       annotation.Kind        `yaml:"kind"`
	Start      annotation.Coordinate  `yaml:"start,flow"`
	End        *annotation.Coordinate `yaml:"end,omitempty,flow"`
	Width      float32                `yaml:"width,omitempty"`
	Height     float32                `yaml:"height,omitempty"`
	Rotation   float32                `yaml:"rotation,omitempty"`
	LineWidth  float32                `yaml:"line_width,omitempty"`
	Background annotation.ColorName   `yaml:"background"`
	Foreground annotation.ColorName   `yaml:"foreground"`
	Text       string                 `yaml:"text,omitempty"`
	Group      string                 `yaml:"group,omitempty"`
}

func stateOf(a *annotation.Annotation) AnnotationState {
	s := AnnotationState{
		Name:       a.Name,
		Kind:       a.Kind,
		Start:      a.Start,
		Rotation:   a.Rotation,
		LineWidth:  a.LineWidth,
		Background: a.Background.Name,
		Foreground: a.Foreground.Name,
		Text:       a.Text.Characters,
	}
	if a.IsOneDimensional() {
		end := a.End
		s.End = &end
	} else {
		s.Width, s.Height = a.Width, a.Height
	}
	if a.Group.IsValid() {
		s.Group = a.Group.String()
	}
	return s
}

func (r *Runner) report(rep *Report) *Report {
	h := r.engine.History()
	rep.Merged = r.merged
	rep.UndoSteps = h.UndoCount()
	rep.RedoSteps = h.RedoCount()
	rep.NextUndo = r.engine.UndoDescription()
	rep.Files = rep.Files[:0]
	for _, f := range r.engine.Files() {
		fs := FileState{Name: f.Name(), Annotations: []AnnotationState{}}
		for _, a := range f.Annotations() {
			fs.Annotations = append(fs.Annotations, stateOf(a))
		}
		rep.Files = append(rep.Files, fs)
	}
	return rep
}

// Write prints the report as YAML.
func (rep *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}

package annotation

import (
	"github.com/google/uuid"
)

// Coordinate is a position in an annotation's coordinate space.
type Coordinate struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// Color is a palette color with an optional custom RGBA value.
type Color struct {
	Name ColorName  `yaml:"name" toml:"name"`
	RGBA [4]float32 `yaml:"rgba,flow" toml:"rgba"`
}

// IsValid reports whether a custom color has components in [0, 1].
func (c Color) IsValid() bool {
	if c.Name < ColorNone || c.Name > ColorCustom {
		return false
	}
	if c.Name != ColorCustom {
		return true
	}
	for _, v := range c.RGBA {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// TextStyle holds the text and font attributes of a text annotation.
type TextStyle struct {
	Characters  string          `yaml:"characters" toml:"characters"`
	FontName    string          `yaml:"font" toml:"font"`
	PointSize   int             `yaml:"point_size" toml:"point_size"`
	PercentSize float32         `yaml:"percent_size" toml:"percent_size"`
	Bold        bool            `yaml:"bold" toml:"bold"`
	Italic      bool            `yaml:"italic" toml:"italic"`
	Underline   bool            `yaml:"underline" toml:"underline"`
	Outline     bool            `yaml:"outline" toml:"outline"`
	AlignH      AlignHorizontal `yaml:"align_h" toml:"align_h"`
	AlignV      AlignVertical   `yaml:"align_v" toml:"align_v"`
	Orientation Orientation     `yaml:"orientation" toml:"orientation"`
	Connect     ConnectType     `yaml:"connect" toml:"connect"`
	Color       Color           `yaml:"color" toml:"color"`
}

// Default attribute values for new annotations.
const (
	DefaultWidth       = 25.0
	DefaultHeight      = 25.0
	DefaultLineWidth   = 3.0
	DefaultFontName    = "vera"
	DefaultPointSize   = 14
	DefaultPercentSize = 5.0
)

// Annotation is an editable annotation.
//
// Exported fields are plain state. Identity and ownership are managed by the
// package: the identity never changes and the owner is set by File.
type Annotation struct {
	id    uuid.UUID
	owner *File

	Name        string
	Kind        Kind
	Space       CoordinateSpace
	TabIndex    int
	WindowIndex int

	// Start is the center of a two-dimensional annotation.
	Start Coordinate
	End   Coordinate

	Width     float32
	Height    float32
	Rotation  float32
	LineWidth float32

	Background Color
	Foreground Color

	ArrowStart bool
	ArrowEnd   bool

	Text          TextStyle
	TabBackground TabBackground
	Group         GroupKey
}

// New creates an annotation of the given kind with a fresh identity.
func New(kind Kind) *Annotation {
	a := &Annotation{
		id:        uuid.New(),
		Kind:      kind,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		LineWidth: DefaultLineWidth,
		Foreground: Color{
			Name: ColorBlack,
		},
		Text: TextStyle{
			FontName:    DefaultFontName,
			PointSize:   DefaultPointSize,
			PercentSize: DefaultPercentSize,
			Color:       Color{Name: ColorBlack},
		},
	}
	if kind == KindText {
		a.Foreground = Color{Name: ColorNone}
	}
	return a
}

// ID returns the stable identity of the annotation.
func (a *Annotation) ID() uuid.UUID {
	return a.id
}

// File returns the file that currently holds the annotation, or nil.
func (a *Annotation) File() *File {
	return a.owner
}

// Clone returns a detached deep copy with the same identity.
func (a *Annotation) Clone() *Annotation {
	c := *a
	c.owner = nil
	return &c
}

// Duplicate returns a detached deep copy with a new identity.
func (a *Annotation) Duplicate() *Annotation {
	c := a.Clone()
	c.id = uuid.New()
	return c
}

// SameState reports whether both annotations have the same identity and
// attribute values, ignoring ownership.
func (a *Annotation) SameState(other *Annotation) bool {
	if a == nil || other == nil {
		return a == other
	}
	x, y := *a, *other
	x.owner, y.owner = nil, nil
	return x == y
}

// IsOneDimensional reports whether the annotation is positioned by two
// coordinates.
func (a *Annotation) IsOneDimensional() bool {
	return a.Kind == KindLine
}

// IsTwoDimensional reports whether the annotation is positioned by a center
// coordinate and a size.
func (a *Annotation) IsTwoDimensional() bool {
	return !a.IsOneDimensional()
}

func (a *Annotation) IsLine() bool { return a.Kind == KindLine }

func (a *Annotation) IsText() bool { return a.Kind == KindText }

func (a *Annotation) IsBrowserTab() bool { return a.Kind == KindBrowserTab }

// SupportsBackground reports whether the annotation has a fill color.
func (a *Annotation) SupportsBackground() bool {
	switch a.Kind {
	case KindLine, KindImage:
		return false
	}
	return true
}

// SupportsForeground reports whether the annotation has a line color.
func (a *Annotation) SupportsForeground() bool {
	return a.Kind != KindImage
}

// SupportsLineWidth reports whether the foreground line width is used.
func (a *Annotation) SupportsLineWidth() bool {
	switch a.Kind {
	case KindBox, KindOval, KindLine, KindBrowserTab:
		return true
	}
	return false
}

// SupportsRotation reports whether the annotation can be rotated.
func (a *Annotation) SupportsRotation() bool {
	switch a.Kind {
	case KindLine, KindBrowserTab, KindColorBar, KindScaleBar:
		return false
	}
	return true
}

// Bounds2D returns the axis-aligned extent of a two-dimensional annotation.
func (a *Annotation) Bounds2D() (minX, maxX, minY, maxY float32) {
	minX = a.Start.X - a.Width/2
	maxX = minX + a.Width
	minY = a.Start.Y - a.Height/2
	maxY = minY + a.Height
	return minX, maxX, minY, maxY
}

// SetBounds2D positions and sizes a two-dimensional annotation so that it
// covers the given extent.
func (a *Annotation) SetBounds2D(minX, maxX, minY, maxY float32) {
	a.Start.X = (minX + maxX) / 2
	a.Start.Y = (minY + maxY) / 2
	a.Width = maxX - minX
	a.Height = maxY - minY
}

// ApplyLocationAndSize copies the placement of other: coordinate space, tab
// and window, coordinates, size and rotation.
func (a *Annotation) ApplyLocationAndSize(other *Annotation) {
	a.Space = other.Space
	a.TabIndex = other.TabIndex
	a.WindowIndex = other.WindowIndex
	a.Start = other.Start
	a.End = other.End
	a.Width = other.Width
	a.Height = other.Height
	a.Rotation = other.Rotation
}

func (a *Annotation) String() string {
	if a.Name != "" {
		return a.Kind.String() + " " + a.Name
	}
	return a.Kind.String() + " " + a.id.String()
}

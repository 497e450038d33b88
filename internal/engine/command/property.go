package command

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

type propertyRule struct {
	description string
	applies     func(*annotation.Annotation) bool
	copyFields  copyFunc
}

func anyKind(*annotation.Annotation) bool { return true }

func twoDimensional(a *annotation.Annotation) bool { return a.IsTwoDimensional() }

// propertyRules describes every mode that edits annotation attributes in
// place: which annotations it applies to and which fields it copies.
var propertyRules = map[Mode]propertyRule{
	ModeBrowserTabBackground: {
		description: "Browser Tab Background",
		applies:     (*annotation.Annotation).IsBrowserTab,
		copyFields:  func(dst, src *annotation.Annotation) { dst.TabBackground = src.TabBackground },
	},
	ModeBounds2DAll: {
		description: "Bounds",
		applies:     twoDimensional,
		copyFields:  copyBounds,
	},
	ModeBounds2DSingle: {
		description: "Bounds",
		applies:     twoDimensional,
		copyFields:  copyBounds,
	},
	ModeColorBackground: {
		description: "Background Color",
		applies:     (*annotation.Annotation).SupportsBackground,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Background = src.Background },
	},
	ModeColorForeground: {
		description: "Foreground Color",
		applies:     (*annotation.Annotation).SupportsForeground,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Foreground = src.Foreground },
	},
	ModeCoordinateOne: {
		description: "Coordinate",
		applies:     anyKind,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Start = src.Start },
	},
	ModeCoordinateOneAndTwo: {
		description: "Coordinate",
		applies:     (*annotation.Annotation).IsLine,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Start, dst.End = src.Start, src.End },
	},
	ModeCoordinateTwo: {
		description: "Coordinate",
		applies:     (*annotation.Annotation).IsLine,
		copyFields:  func(dst, src *annotation.Annotation) { dst.End = src.End },
	},
	ModeLineArrowStart: {
		description: "Line Arrow Start",
		applies:     (*annotation.Annotation).IsLine,
		copyFields:  func(dst, src *annotation.Annotation) { dst.ArrowStart = src.ArrowStart },
	},
	ModeLineArrowEnd: {
		description: "Line Arrow End",
		applies:     (*annotation.Annotation).IsLine,
		copyFields:  func(dst, src *annotation.Annotation) { dst.ArrowEnd = src.ArrowEnd },
	},
	ModeLineWidthForeground: {
		description: "Foreground Line Width",
		applies:     (*annotation.Annotation).SupportsLineWidth,
		copyFields:  func(dst, src *annotation.Annotation) { dst.LineWidth = src.LineWidth },
	},
	ModeLocationAndSize: {
		description: "Reshape Annotations",
		applies:     anyKind,
		copyFields:  (*annotation.Annotation).ApplyLocationAndSize,
	},
	ModeRotationAngle: {
		description: "Rotation Angle",
		applies:     (*annotation.Annotation).SupportsRotation,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Rotation = src.Rotation },
	},
	ModeTextAlignmentHorizontal: {
		description: "Text Horizontal Alignment",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.AlignH = src.Text.AlignH },
	},
	ModeTextAlignmentVertical: {
		description: "Text Vertical Alignment",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.AlignV = src.Text.AlignV },
	},
	ModeTextCharacters: {
		description: "Text Characters",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Characters = src.Text.Characters },
	},
	ModeTextColor: {
		description: "Text Color",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Color = src.Text.Color },
	},
	ModeTextConnectToBrainordinate: {
		description: "Text Connect to Brainordinate",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Connect = src.Text.Connect },
	},
	ModeTextFontBold: {
		description: "Text Bold",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Bold = src.Text.Bold },
	},
	ModeTextFontItalic: {
		description: "Text Italic",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Italic = src.Text.Italic },
	},
	ModeTextFontName: {
		description: "Text Font Name",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.FontName = src.Text.FontName },
	},
	ModeTextFontPercentSize: {
		description: "Text Font Size",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.PercentSize = src.Text.PercentSize },
	},
	ModeTextFontPointSize: {
		description: "Text Font Size",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.PointSize = src.Text.PointSize },
	},
	ModeTextFontUnderline: {
		description: "Text Underline",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Underline = src.Text.Underline },
	},
	ModeTextFontOutline: {
		description: "Text Outline",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Outline = src.Text.Outline },
	},
	ModeTextOrientation: {
		description: "Text Orientation",
		applies:     (*annotation.Annotation).IsText,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Text.Orientation = src.Text.Orientation },
	},
	ModeTwoDimHeight: {
		description: "Height",
		applies:     twoDimensional,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Height = src.Height },
	},
	ModeTwoDimWidth: {
		description: "Width",
		applies:     twoDimensional,
		copyFields:  func(dst, src *annotation.Annotation) { dst.Width = src.Width },
	},
}

func copyBounds(dst, src *annotation.Annotation) {
	dst.Start = src.Start
	dst.Width = src.Width
	dst.Height = src.Height
}

func checkAnnotations(anns []*annotation.Annotation) error {
	if len(anns) == 0 {
		return ErrNoAnnotations
	}
	for i, a := range anns {
		if a == nil {
			return fmt.Errorf("%w at position %d", ErrNilAnnotation, i)
		}
	}
	return nil
}

func finite(vals ...float32) bool {
	for _, v := range vals {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func invalidValue(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...)
}

// setProperty validates the list, then for every annotation the mode applies
// to captures the current state, applies set to a copy, and copies the
// edited fields back into the live annotation. Annotations the mode does not
// apply to are skipped.
func (c *Command) setProperty(mode Mode, anns []*annotation.Annotation, set func(*annotation.Annotation)) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if err := checkAnnotations(anns); err != nil {
		return err
	}

	rule := propertyRules[mode]
	mementos := make([]*Memento, 0, len(anns))
	seen := make(map[uuid.UUID]bool, len(anns))
	for _, a := range anns {
		if seen[a.ID()] || !rule.applies(a) {
			continue
		}
		seen[a.ID()] = true

		undo := a.Clone()
		redo := a.Clone()
		set(redo)
		rule.copyFields(a, redo)
		mementos = append(mementos, newMemento(a, redo, undo))
	}

	c.configure(mode, rule.description, newPropertyChange(rule.copyFields, mementos))
	return nil
}

// SetModeCoordinateOne moves the start coordinate of lines and the center
// of two-dimensional annotations.
func (c *Command) SetModeCoordinateOne(coord annotation.Coordinate, anns []*annotation.Annotation) error {
	if !finite(coord.X, coord.Y, coord.Z) {
		return invalidValue("coordinate %v", coord)
	}
	return c.setProperty(ModeCoordinateOne, anns, func(a *annotation.Annotation) { a.Start = coord })
}

// SetModeCoordinateTwo moves the end coordinate of lines.
func (c *Command) SetModeCoordinateTwo(coord annotation.Coordinate, anns []*annotation.Annotation) error {
	if !finite(coord.X, coord.Y, coord.Z) {
		return invalidValue("coordinate %v", coord)
	}
	return c.setProperty(ModeCoordinateTwo, anns, func(a *annotation.Annotation) { a.End = coord })
}

// SetModeCoordinateOneAndTwo moves both coordinates of lines.
func (c *Command) SetModeCoordinateOneAndTwo(one, two annotation.Coordinate, anns []*annotation.Annotation) error {
	if !finite(one.X, one.Y, one.Z, two.X, two.Y, two.Z) {
		return invalidValue("coordinates %v %v", one, two)
	}
	return c.setProperty(ModeCoordinateOneAndTwo, anns, func(a *annotation.Annotation) {
		a.Start = one
		a.End = two
	})
}

// SetModeBounds2DAll places two-dimensional annotations so they cover the
// given extent.
func (c *Command) SetModeBounds2DAll(minX, maxX, minY, maxY float32, anns []*annotation.Annotation) error {
	if !finite(minX, maxX, minY, maxY) || minX >= maxX || minY >= maxY {
		return invalidValue("bounds x[%g,%g] y[%g,%g]", minX, maxX, minY, maxY)
	}
	return c.setProperty(ModeBounds2DAll, anns, func(a *annotation.Annotation) {
		a.SetBounds2D(minX, maxX, minY, maxY)
	})
}

// BoundsSide names one edge of a two-dimensional annotation.
type BoundsSide int

const (
	BoundsMinX BoundsSide = iota
	BoundsMaxX
	BoundsMinY
	BoundsMaxY
)

var boundsSideNames = []string{"min-x", "max-x", "min-y", "max-y"}

func (s BoundsSide) String() string {
	if s < 0 || int(s) >= len(boundsSideNames) {
		return fmt.Sprintf("BoundsSide(%d)", int(s))
	}
	return boundsSideNames[s]
}

// ParseBoundsSide parses "min-x", "max-x", "min-y" or "max-y".
func ParseBoundsSide(s string) (BoundsSide, error) {
	for i, n := range boundsSideNames {
		if n == s {
			return BoundsSide(i), nil
		}
	}
	return 0, invalidValue("bounds side %q", s)
}

// edges returns the extent of a with this side moved to value.
func (s BoundsSide) edges(a *annotation.Annotation, value float32) (minX, maxX, minY, maxY float32) {
	minX, maxX, minY, maxY = a.Bounds2D()
	switch s {
	case BoundsMinX:
		minX = value
	case BoundsMaxX:
		maxX = value
	case BoundsMinY:
		minY = value
	case BoundsMaxY:
		maxY = value
	}
	return minX, maxX, minY, maxY
}

// SetModeBounds2DSingle moves one edge of two-dimensional annotations,
// keeping the opposite edge in place.
func (c *Command) SetModeBounds2DSingle(side BoundsSide, value float32, anns []*annotation.Annotation) error {
	if side < BoundsMinX || side > BoundsMaxY || !finite(value) {
		return invalidValue("bounds %s = %g", side, value)
	}
	if err := checkAnnotations(anns); err != nil {
		return err
	}
	for _, a := range anns {
		if !a.IsTwoDimensional() {
			continue
		}
		minX, maxX, minY, maxY := side.edges(a, value)
		if minX >= maxX || minY >= maxY {
			return invalidValue("bounds %s = %g collapses %s", side, value, a)
		}
	}
	return c.setProperty(ModeBounds2DSingle, anns, func(a *annotation.Annotation) {
		a.SetBounds2D(side.edges(a, value))
	})
}

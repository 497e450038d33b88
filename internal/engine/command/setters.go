package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/annotation"
)

// SetModeColorBackground sets the fill color of annotations that have one.
func (c *Command) SetModeColorBackground(color annotation.Color, anns []*annotation.Annotation) error {
	if !color.IsValid() {
		return invalidValue("background color %v", color)
	}
	return c.setProperty(ModeColorBackground, anns, func(a *annotation.Annotation) { a.Background = color })
}

// SetModeColorForeground sets the line color.
func (c *Command) SetModeColorForeground(color annotation.Color, anns []*annotation.Annotation) error {
	if !color.IsValid() {
		return invalidValue("foreground color %v", color)
	}
	return c.setProperty(ModeColorForeground, anns, func(a *annotation.Annotation) { a.Foreground = color })
}

// SetModeLineArrowStart shows or hides the arrow at the start of lines.
func (c *Command) SetModeLineArrowStart(show bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeLineArrowStart, anns, func(a *annotation.Annotation) { a.ArrowStart = show })
}

// SetModeLineArrowEnd shows or hides the arrow at the end of lines.
func (c *Command) SetModeLineArrowEnd(show bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeLineArrowEnd, anns, func(a *annotation.Annotation) { a.ArrowEnd = show })
}

// SetModeLineWidthForeground sets the line width.
func (c *Command) SetModeLineWidthForeground(width float32, anns []*annotation.Annotation) error {
	if !finite(width) || width <= 0 {
		return invalidValue("line width %g", width)
	}
	return c.setProperty(ModeLineWidthForeground, anns, func(a *annotation.Annotation) { a.LineWidth = width })
}

// SetModeRotationAngle sets the rotation, in degrees, of annotations that
// can rotate.
func (c *Command) SetModeRotationAngle(degrees float32, anns []*annotation.Annotation) error {
	if !finite(degrees) {
		return invalidValue("rotation %g", degrees)
	}
	return c.setProperty(ModeRotationAngle, anns, func(a *annotation.Annotation) { a.Rotation = degrees })
}

// SetModeTwoDimHeight sets the height of two-dimensional annotations.
func (c *Command) SetModeTwoDimHeight(height float32, anns []*annotation.Annotation) error {
	if !finite(height) || height <= 0 {
		return invalidValue("height %g", height)
	}
	return c.setProperty(ModeTwoDimHeight, anns, func(a *annotation.Annotation) { a.Height = height })
}

// SetModeTwoDimWidth sets the width of two-dimensional annotations.
func (c *Command) SetModeTwoDimWidth(width float32, anns []*annotation.Annotation) error {
	if !finite(width) || width <= 0 {
		return invalidValue("width %g", width)
	}
	return c.setProperty(ModeTwoDimWidth, anns, func(a *annotation.Annotation) { a.Width = width })
}

// SetModeBrowserTabBackground sets the background style of browser tab
// annotations.
func (c *Command) SetModeBrowserTabBackground(bg annotation.TabBackground, anns []*annotation.Annotation) error {
	if bg < annotation.TabBackgroundOpaque || bg > annotation.TabBackgroundTransparent {
		return invalidValue("tab background %d", int(bg))
	}
	return c.setProperty(ModeBrowserTabBackground, anns, func(a *annotation.Annotation) { a.TabBackground = bg })
}

// SetModeTextAlignmentHorizontal sets the horizontal alignment of text.
func (c *Command) SetModeTextAlignmentHorizontal(align annotation.AlignHorizontal, anns []*annotation.Annotation) error {
	if align < annotation.AlignLeft || align > annotation.AlignRight {
		return invalidValue("horizontal alignment %d", int(align))
	}
	return c.setProperty(ModeTextAlignmentHorizontal, anns, func(a *annotation.Annotation) { a.Text.AlignH = align })
}

// SetModeTextAlignmentVertical sets the vertical alignment of text.
func (c *Command) SetModeTextAlignmentVertical(align annotation.AlignVertical, anns []*annotation.Annotation) error {
	if align < annotation.AlignTop || align > annotation.AlignBottom {
		return invalidValue("vertical alignment %d", int(align))
	}
	return c.setProperty(ModeTextAlignmentVertical, anns, func(a *annotation.Annotation) { a.Text.AlignV = align })
}

// SetModeTextCharacters replaces the text of text annotations.
func (c *Command) SetModeTextCharacters(text string, anns []*annotation.Annotation) error {
	return c.setProperty(ModeTextCharacters, anns, func(a *annotation.Annotation) { a.Text.Characters = text })
}

// SetModeTextColor sets the text color.
func (c *Command) SetModeTextColor(color annotation.Color, anns []*annotation.Annotation) error {
	if !color.IsValid() {
		return invalidValue("text color %v", color)
	}
	return c.setProperty(ModeTextColor, anns, func(a *annotation.Annotation) { a.Text.Color = color })
}

// SetModeTextConnectToBrainordinate sets how text is tied to its brainordinate.
func (c *Command) SetModeTextConnectToBrainordinate(connect annotation.ConnectType, anns []*annotation.Annotation) error {
	if connect < annotation.ConnectOff || connect > annotation.ConnectLine {
		return invalidValue("connect type %d", int(connect))
	}
	return c.setProperty(ModeTextConnectToBrainordinate, anns, func(a *annotation.Annotation) { a.Text.Connect = connect })
}

// SetModeTextFontBold turns bold text on or off.
func (c *Command) SetModeTextFontBold(bold bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeTextFontBold, anns, func(a *annotation.Annotation) { a.Text.Bold = bold })
}

// SetModeTextFontItalic turns italic text on or off.
func (c *Command) SetModeTextFontItalic(italic bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeTextFontItalic, anns, func(a *annotation.Annotation) { a.Text.Italic = italic })
}

// SetModeTextFontUnderline turns underlined text on or off.
func (c *Command) SetModeTextFontUnderline(underline bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeTextFontUnderline, anns, func(a *annotation.Annotation) { a.Text.Underline = underline })
}

// SetModeTextFontOutline turns outlined text on or off.
func (c *Command) SetModeTextFontOutline(outline bool, anns []*annotation.Annotation) error {
	return c.setProperty(ModeTextFontOutline, anns, func(a *annotation.Annotation) { a.Text.Outline = outline })
}

// SetModeTextFontName sets the font family of text annotations.
func (c *Command) SetModeTextFontName(name string, anns []*annotation.Annotation) error {
	if name == "" {
		return invalidValue("empty font name")
	}
	return c.setProperty(ModeTextFontName, anns, func(a *annotation.Annotation) { a.Text.FontName = name })
}

// SetModeTextFontPointSize sets the font size in points.
func (c *Command) SetModeTextFontPointSize(size int, anns []*annotation.Annotation) error {
	if size <= 0 {
		return invalidValue("point size %d", size)
	}
	return c.setProperty(ModeTextFontPointSize, anns, func(a *annotation.Annotation) { a.Text.PointSize = size })
}

// SetModeTextFontPercentSize sets the font size as a percentage of the
// viewport height.
func (c *Command) SetModeTextFontPercentSize(percent float32, anns []*annotation.Annotation) error {
	if !finite(percent) || percent <= 0 {
		return invalidValue("percent size %g", percent)
	}
	return c.setProperty(ModeTextFontPercentSize, anns, func(a *annotation.Annotation) { a.Text.PercentSize = percent })
}

// SetModeTextOrientation sets the layout direction of text.
func (c *Command) SetModeTextOrientation(orientation annotation.Orientation, anns []*annotation.Annotation) error {
	if orientation < annotation.OrientationHorizontal || orientation > annotation.OrientationStacked {
		return invalidValue("orientation %d", int(orientation))
	}
	return c.setProperty(ModeTextOrientation, anns, func(a *annotation.Annotation) { a.Text.Orientation = orientation })
}

// SetModeLocationAndSize records a move or resize that has already been
// applied, typically by an interactive drag. after holds the live
// annotations in their final state and before holds snapshots taken before
// the drag, position by position. The live annotations are not modified.
func (c *Command) SetModeLocationAndSize(before, after []*annotation.Annotation) error {
	if err := c.checkUnconfigured(); err != nil {
		return err
	}
	if err := checkAnnotations(after); err != nil {
		return err
	}
	if len(before) != len(after) {
		return fmt.Errorf("%w: %d before, %d after", ErrMismatchedLists, len(before), len(after))
	}
	if err := checkAnnotations(before); err != nil {
		return err
	}
	for i := range after {
		if before[i].ID() != after[i].ID() || before[i].Kind != after[i].Kind {
			return fmt.Errorf("%w: position %d is %s and %s", ErrMismatchedLists, i, before[i], after[i])
		}
	}

	rule := propertyRules[ModeLocationAndSize]
	mementos := make([]*Memento, 0, len(after))
	seen := make(map[uuid.UUID]bool, len(after))
	for i, live := range after {
		if seen[live.ID()] {
			continue
		}
		seen[live.ID()] = true
		mementos = append(mementos, newMemento(live, live.Clone(), before[i].Clone()))
	}

	c.configure(ModeLocationAndSize, rule.description, newPropertyChange(rule.copyFields, mementos))
	return nil
}

package replay

import (
	"fmt"
	"strconv"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/engine/command"
)

// configure sets the mode of cmd for a step that edits existing
// annotations.
func configure(cmd *command.Command, st Step, targets []*annotation.Annotation) error {
	one := annotation.Coordinate{X: st.X, Y: st.Y, Z: st.Z}
	two := annotation.Coordinate{X: st.X2, Y: st.Y2, Z: st.Z2}
	color := annotation.Color{Name: st.Color, RGBA: st.RGBA}

	switch st.Op {
	case "delete":
		return cmd.SetModeDeleteAnnotations(targets)
	case "move":
		return cmd.SetModeCoordinateOne(one, targets)
	case "move-end":
		return cmd.SetModeCoordinateTwo(two, targets)
	case "move-line":
		return cmd.SetModeCoordinateOneAndTwo(one, two, targets)
	case "drag":
		return drag(cmd, st, targets)
	case "bounds":
		return cmd.SetModeBounds2DAll(st.X, st.X2, st.Y, st.Y2, targets)
	case "bounds-side":
		side, err := command.ParseBoundsSide(st.Side)
		if err != nil {
			return err
		}
		v, err := parseFloat(st)
		if err != nil {
			return err
		}
		return cmd.SetModeBounds2DSingle(side, v, targets)
	case "background":
		return cmd.SetModeColorBackground(color, targets)
	case "foreground":
		return cmd.SetModeColorForeground(color, targets)
	case "text-color":
		return cmd.SetModeTextColor(color, targets)
	case "width":
		return cmd.SetModeTwoDimWidth(st.Width, targets)
	case "height":
		return cmd.SetModeTwoDimHeight(st.Height, targets)
	case "text":
		return cmd.SetModeTextCharacters(st.Value, targets)
	case "font-name":
		return cmd.SetModeTextFontName(st.Value, targets)
	case "font-point-size":
		n, err := strconv.Atoi(st.Value)
		if err != nil {
			return valueError(st, err)
		}
		return cmd.SetModeTextFontPointSize(n, targets)
	case "group":
		return cmd.SetModeGroupingGroup(annotation.UserGroupKey(st.Window, st.Group), targets)
	case "line-width", "rotate", "font-percent-size":
		v, err := parseFloat(st)
		if err != nil {
			return err
		}
		switch st.Op {
		case "line-width":
			return cmd.SetModeLineWidthForeground(v, targets)
		case "rotate":
			return cmd.SetModeRotationAngle(v, targets)
		}
		return cmd.SetModeTextFontPercentSize(v, targets)
	case "arrow-start", "arrow-end", "bold", "italic", "underline", "outline":
		b, err := strconv.ParseBool(st.Value)
		if err != nil {
			return valueError(st, err)
		}
		return configureFlag(cmd, st.Op, b, targets)
	case "align-h", "align-v", "orientation", "connect", "tab-background":
		return configureEnum(cmd, st, targets)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, st.Op)
}

func configureFlag(cmd *command.Command, op string, b bool, targets []*annotation.Annotation) error {
	switch op {
	case "arrow-start":
		return cmd.SetModeLineArrowStart(b, targets)
	case "arrow-end":
		return cmd.SetModeLineArrowEnd(b, targets)
	case "bold":
		return cmd.SetModeTextFontBold(b, targets)
	case "italic":
		return cmd.SetModeTextFontItalic(b, targets)
	case "underline":
		return cmd.SetModeTextFontUnderline(b, targets)
	default:
		return cmd.SetModeTextFontOutline(b, targets)
	}
}

func configureEnum(cmd *command.Command, st Step, targets []*annotation.Annotation) error {
	switch st.Op {
	case "align-h":
		v, err := annotation.ParseAlignHorizontal(st.Value)
		if err != nil {
			return err
		}
		return cmd.SetModeTextAlignmentHorizontal(v, targets)
	case "align-v":
		v, err := annotation.ParseAlignVertical(st.Value)
		if err != nil {
			return err
		}
		return cmd.SetModeTextAlignmentVertical(v, targets)
	case "orientation":
		v, err := annotation.ParseOrientation(st.Value)
		if err != nil {
			return err
		}
		return cmd.SetModeTextOrientation(v, targets)
	case "connect":
		v, err := annotation.ParseConnectType(st.Value)
		if err != nil {
			return err
		}
		return cmd.SetModeTextConnectToBrainordinate(v, targets)
	default:
		v, err := annotation.ParseTabBackground(st.Value)
		if err != nil {
			return err
		}
		return cmd.SetModeBrowserTabBackground(v, targets)
	}
}

// drag moves targets by (dx, dy) and optionally resizes them, then records
// the move as a location-and-size edit. Consecutive drags of the same
// annotations merge into one undo step.
func drag(cmd *command.Command, st Step, targets []*annotation.Annotation) error {
	before := make([]*annotation.Annotation, len(targets))
	for i, a := range targets {
		before[i] = a.Clone()
		a.Start.X += st.DX
		a.Start.Y += st.DY
		if a.IsOneDimensional() {
			a.End.X += st.DX
			a.End.Y += st.DY
		}
		if st.Width > 0 {
			a.Width = st.Width
		}
		if st.Height > 0 {
			a.Height = st.Height
		}
	}
	if err := cmd.SetModeLocationAndSize(before, targets); err != nil {
		for i, a := range targets {
			a.ApplyLocationAndSize(before[i])
		}
		return err
	}
	return nil
}

func parseFloat(st Step) (float32, error) {
	v, err := strconv.ParseFloat(st.Value, 32)
	if err != nil {
		return 0, valueError(st, err)
	}
	return float32(v), nil
}

func valueError(st Step, err error) error {
	return fmt.Errorf("%w: %s value %q: %v", command.ErrInvalidValue, st.Op, st.Value, err)
}

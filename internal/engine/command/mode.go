package command

import (
	"fmt"
	"strings"
)

// Mode identifies the edit operation a command represents.
type Mode int

const (
	ModeInvalid Mode = iota
	ModeBrowserTabBackground
	ModeBounds2DAll
	ModeBounds2DSingle
	ModeColorBackground
	ModeColorForeground
	ModeCoordinateOne
	ModeCoordinateOneAndTwo
	ModeCoordinateTwo
	ModeCreateAnnotation
	ModeCutAnnotation
	ModeDeleteAnnotations
	ModeDuplicateAnnotation
	ModeGroupingGroup
	ModeGroupingRegroup
	ModeGroupingUngroup
	ModeLineArrowStart
	ModeLineArrowEnd
	ModeLineWidthForeground
	ModeLocationAndSize
	ModePasteAnnotation
	ModeRotationAngle
	ModeTextAlignmentHorizontal
	ModeTextAlignmentVertical
	ModeTextCharacters
	ModeTextColor
	ModeTextConnectToBrainordinate
	ModeTextFontBold
	ModeTextFontItalic
	ModeTextFontName
	ModeTextFontPercentSize
	ModeTextFontPointSize
	ModeTextFontUnderline
	ModeTextFontOutline
	ModeTextOrientation
	ModeTwoDimHeight
	ModeTwoDimWidth

	modeCount
)

var modeNames = [modeCount]struct {
	name string
	gui  string
}{
	ModeInvalid:                    {"INVALID", "Invalid"},
	ModeBrowserTabBackground:       {"BROWSER_TAB_BACKGROUND", "Browser Tab Background"},
	ModeBounds2DAll:                {"BOUNDS_2D_ALL", "Bounds 2D All"},
	ModeBounds2DSingle:             {"BOUNDS_2D_SINGLE", "Bounds 2D Single"},
	ModeColorBackground:            {"COLOR_BACKGROUND", "Color - Background"},
	ModeColorForeground:            {"COLOR_FOREGROUND", "Color - Foreground"},
	ModeCoordinateOne:              {"COORDINATE_ONE", "Coordinate One"},
	ModeCoordinateOneAndTwo:        {"COORDINATE_ONE_AND_TWO", "Coordinate One and Two"},
	ModeCoordinateTwo:              {"COORDINATE_TWO", "Coordinate Two"},
	ModeCreateAnnotation:           {"CREATE_ANNOTATION", "Create Annotation"},
	ModeCutAnnotation:              {"CUT_ANNOTATION", "Cut Annotations"},
	ModeDeleteAnnotations:          {"DELETE_ANNOTATIONS", "Delete Annotations"},
	ModeDuplicateAnnotation:        {"DUPLICATE_ANNOTATION", "Duplicate Annotation"},
	ModeGroupingGroup:              {"GROUPING_GROUP", "Group Annotations"},
	ModeGroupingRegroup:            {"GROUPING_REGROUP", "Regroup Annotations"},
	ModeGroupingUngroup:            {"GROUPING_UNGROUP", "Ungroup Annotations"},
	ModeLineArrowStart:             {"LINE_ARROW_START", "Line Arrow Start"},
	ModeLineArrowEnd:               {"LINE_ARROW_END", "Line Arrow End"},
	ModeLineWidthForeground:        {"LINE_WIDTH_FOREGROUND", "Line Width - Foreground"},
	ModeLocationAndSize:            {"LOCATION_AND_SIZE", "Location and Size"},
	ModePasteAnnotation:            {"PASTE_ANNOTATION", "Paste Annotation"},
	ModeRotationAngle:              {"ROTATION_ANGLE", "Rotation Angle"},
	ModeTextAlignmentHorizontal:    {"TEXT_ALIGNMENT_HORIZONTAL", "Text Alignment Horizontal"},
	ModeTextAlignmentVertical:      {"TEXT_ALIGNMENT_VERTICAL", "Text Alignment Vertical"},
	ModeTextCharacters:             {"TEXT_CHARACTERS", "Text Characters"},
	ModeTextColor:                  {"TEXT_COLOR", "Text Color"},
	ModeTextConnectToBrainordinate: {"TEXT_CONNECT_TO_BRAINORDINATE", "Text Connect to Brainordinate"},
	ModeTextFontBold:               {"TEXT_FONT_BOLD", "Text Font Bold"},
	ModeTextFontItalic:             {"TEXT_FONT_ITALIC", "Text Font Italic"},
	ModeTextFontName:               {"TEXT_FONT_NAME", "Text Font Name"},
	ModeTextFontPercentSize:        {"TEXT_FONT_PERCENT_SIZE", "Text Font Percent Size"},
	ModeTextFontPointSize:          {"TEXT_FONT_POINT_SIZE", "Text Font Point Size"},
	ModeTextFontUnderline:          {"TEXT_FONT_UNDERLINE", "Text Font Underline"},
	ModeTextFontOutline:            {"TEXT_FONT_OUTLINE", "Text Font Outline"},
	ModeTextOrientation:            {"TEXT_ORIENTATION", "Text Orientation"},
	ModeTwoDimHeight:               {"TWO_DIM_HEIGHT", "Two Dim Height"},
	ModeTwoDimWidth:                {"TWO_DIM_WIDTH", "Two Dim Width"},
}

// String returns the canonical name, e.g. "TEXT_CHARACTERS".
func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m].name
}

// GuiName returns the name shown to users, e.g. "Text Characters".
func (m Mode) GuiName() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m].gui
}

// IsValid reports whether m is a configured mode.
func (m Mode) IsValid() bool {
	return m > ModeInvalid && m < modeCount
}

// ChangesCollection reports whether commands in this mode add annotations to
// or remove them from a file rather than editing them in place.
func (m Mode) ChangesCollection() bool {
	switch m {
	case ModeCreateAnnotation, ModeCutAnnotation, ModeDeleteAnnotations,
		ModeDuplicateAnnotation, ModePasteAnnotation:
		return true
	}
	return false
}

// IsGrouping reports whether the mode edits group membership.
func (m Mode) IsGrouping() bool {
	switch m {
	case ModeGroupingGroup, ModeGroupingRegroup, ModeGroupingUngroup:
		return true
	}
	return false
}

// ParseMode parses a canonical mode name. Matching ignores case and accepts
// '-' in place of '_'.
func ParseMode(s string) (Mode, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for m := ModeInvalid + 1; m < modeCount; m++ {
		if modeNames[m].name == key {
			return m, nil
		}
	}
	return ModeInvalid, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// AllModes returns every valid mode in declaration order.
func AllModes() []Mode {
	modes := make([]Mode, 0, modeCount-1)
	for m := ModeInvalid + 1; m < modeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

package annotation

import (
	"fmt"
	"strings"
)

// Kind identifies the concrete shape of an annotation.
type Kind int

const (
	KindBox Kind = iota
	KindOval
	KindLine
	KindText
	KindImage
	KindColorBar
	KindScaleBar
	KindBrowserTab
)

var kindNames = []string{"box", "oval", "line", "text", "image", "color-bar", "scale-bar", "browser-tab"}

func (k Kind) String() string { return nameOf(int(k), kindNames) }

// ParseKind parses a kind name such as "box" or "browser-tab".
func ParseKind(s string) (Kind, error) { return parseName[Kind]("kind", s, kindNames) }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error { return unmarshalName(k, ParseKind, b) }

// CoordinateSpace identifies the space an annotation's coordinates live in.
type CoordinateSpace int

const (
	SpaceTab CoordinateSpace = iota
	SpaceChart
	SpaceSpacer
	SpaceStereotaxic
	SpaceSurface
	SpaceViewport
	SpaceWindow
)

var spaceNames = []string{"tab", "chart", "spacer", "stereotaxic", "surface", "viewport", "window"}

func (s CoordinateSpace) String() string { return nameOf(int(s), spaceNames) }

// ParseCoordinateSpace parses a coordinate space name.
func ParseCoordinateSpace(s string) (CoordinateSpace, error) {
	return parseName[CoordinateSpace]("coordinate space", s, spaceNames)
}

func (s CoordinateSpace) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *CoordinateSpace) UnmarshalText(b []byte) error {
	return unmarshalName(s, ParseCoordinateSpace, b)
}

// ColorName is a named palette color. ColorCustom selects the RGBA value
// stored alongside it.
type ColorName int

const (
	ColorNone ColorName = iota
	ColorBlack
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorGray
	ColorCustom
)

var colorNames = []string{"none", "black", "white", "red", "green", "blue", "yellow", "gray", "custom"}

func (c ColorName) String() string { return nameOf(int(c), colorNames) }

// ParseColorName parses a palette color name.
func ParseColorName(s string) (ColorName, error) {
	return parseName[ColorName]("color", s, colorNames)
}

func (c ColorName) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ColorName) UnmarshalText(b []byte) error { return unmarshalName(c, ParseColorName, b) }

// AlignHorizontal is the horizontal alignment of text.
type AlignHorizontal int

const (
	AlignLeft AlignHorizontal = iota
	AlignCenter
	AlignRight
)

var alignHNames = []string{"left", "center", "right"}

func (a AlignHorizontal) String() string { return nameOf(int(a), alignHNames) }

// ParseAlignHorizontal parses a horizontal alignment name.
func ParseAlignHorizontal(s string) (AlignHorizontal, error) {
	return parseName[AlignHorizontal]("horizontal alignment", s, alignHNames)
}

func (a AlignHorizontal) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AlignHorizontal) UnmarshalText(b []byte) error {
	return unmarshalName(a, ParseAlignHorizontal, b)
}

// AlignVertical is the vertical alignment of text.
type AlignVertical int

const (
	AlignTop AlignVertical = iota
	AlignMiddle
	AlignBottom
)

var alignVNames = []string{"top", "middle", "bottom"}

func (a AlignVertical) String() string { return nameOf(int(a), alignVNames) }

// ParseAlignVertical parses a vertical alignment name.
func ParseAlignVertical(s string) (AlignVertical, error) {
	return parseName[AlignVertical]("vertical alignment", s, alignVNames)
}

func (a AlignVertical) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AlignVertical) UnmarshalText(b []byte) error {
	return unmarshalName(a, ParseAlignVertical, b)
}

// Orientation is the text layout direction.
type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationStacked
)

var orientationNames = []string{"horizontal", "stacked"}

func (o Orientation) String() string { return nameOf(int(o), orientationNames) }

// ParseOrientation parses a text orientation name.
func ParseOrientation(s string) (Orientation, error) {
	return parseName[Orientation]("orientation", s, orientationNames)
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error { return unmarshalName(o, ParseOrientation, b) }

// ConnectType controls how a text label is tied to a brainordinate.
type ConnectType int

const (
	ConnectOff ConnectType = iota
	ConnectArrow
	ConnectLine
)

var connectNames = []string{"off", "arrow", "line"}

func (c ConnectType) String() string { return nameOf(int(c), connectNames) }

// ParseConnectType parses a connect-to-brainordinate type name.
func ParseConnectType(s string) (ConnectType, error) {
	return parseName[ConnectType]("connect type", s, connectNames)
}

func (c ConnectType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ConnectType) UnmarshalText(b []byte) error { return unmarshalName(c, ParseConnectType, b) }

// TabBackground is the background style of a browser tab annotation.
type TabBackground int

const (
	TabBackgroundOpaque TabBackground = iota
	TabBackgroundTransparent
)

var tabBackgroundNames = []string{"opaque", "transparent"}

func (t TabBackground) String() string { return nameOf(int(t), tabBackgroundNames) }

// ParseTabBackground parses a browser tab background name.
func ParseTabBackground(s string) (TabBackground, error) {
	return parseName[TabBackground]("tab background", s, tabBackgroundNames)
}

func (t TabBackground) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TabBackground) UnmarshalText(b []byte) error {
	return unmarshalName(t, ParseTabBackground, b)
}

func nameOf(i int, names []string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseName[T ~int](what, s string, names []string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownValue, what, s)
}

func unmarshalName[T any](dst *T, parse func(string) (T, error), b []byte) error {
	v, err := parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

package annotation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	box := New(KindBox)
	assert.NotEqual(t, uuid.Nil, box.ID())
	assert.Equal(t, float32(DefaultWidth), box.Width)
	assert.Equal(t, ColorBlack, box.Foreground.Name)
	assert.False(t, box.Group.IsValid())
	assert.Nil(t, box.File())

	text := New(KindText)
	assert.Equal(t, ColorNone, text.Foreground.Name)
	assert.Equal(t, DefaultFontName, text.Text.FontName)
}

func TestClone_KeepsIdentityAndDetaches(t *testing.T) {
	f := NewFile("f", nil)
	a := New(KindOval)
	a.Name = "oval"
	_, err := f.Add(a)
	require.NoError(t, err)

	c := a.Clone()
	assert.Equal(t, a.ID(), c.ID())
	assert.Nil(t, c.File())
	assert.True(t, a.SameState(c))

	c.Width = 90
	assert.NotEqual(t, a.Width, c.Width)
	assert.False(t, a.SameState(c))
}

func TestDuplicate_NewIdentity(t *testing.T) {
	a := New(KindBox)
	d := a.Duplicate()
	assert.NotEqual(t, a.ID(), d.ID())
	assert.Equal(t, a.Width, d.Width)
	assert.False(t, a.SameState(d))
}

func TestBounds2D_RoundTrip(t *testing.T) {
	a := New(KindBrowserTab)
	a.SetBounds2D(10, 30, 20, 60)

	assert.Equal(t, Coordinate{X: 20, Y: 40}, a.Start)
	assert.Equal(t, float32(20), a.Width)
	assert.Equal(t, float32(40), a.Height)

	minX, maxX, minY, maxY := a.Bounds2D()
	assert.Equal(t, []float32{10, 30, 20, 60}, []float32{minX, maxX, minY, maxY})
}

func TestApplyLocationAndSize(t *testing.T) {
	a := New(KindBox)
	b := a.Clone()
	b.Start = Coordinate{X: 5, Y: 6}
	b.Width = 12
	b.Rotation = 45
	b.Space = SpaceWindow
	b.Background = Color{Name: ColorRed}

	a.ApplyLocationAndSize(b)
	assert.Equal(t, b.Start, a.Start)
	assert.Equal(t, b.Width, a.Width)
	assert.Equal(t, b.Rotation, a.Rotation)
	assert.Equal(t, SpaceWindow, a.Space)
	assert.Equal(t, ColorNone, a.Background.Name, "colors are not part of location")
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		kind       Kind
		oneDim     bool
		background bool
		lineWidth  bool
		rotation   bool
	}{
		{KindBox, false, true, true, true},
		{KindOval, false, true, true, true},
		{KindLine, true, false, true, false},
		{KindText, false, true, false, true},
		{KindImage, false, false, false, true},
		{KindColorBar, false, true, false, false},
		{KindBrowserTab, false, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			a := New(tt.kind)
			assert.Equal(t, tt.oneDim, a.IsOneDimensional())
			assert.Equal(t, !tt.oneDim, a.IsTwoDimensional())
			assert.Equal(t, tt.background, a.SupportsBackground())
			assert.Equal(t, tt.lineWidth, a.SupportsLineWidth())
			assert.Equal(t, tt.rotation, a.SupportsRotation())
		})
	}
}

func TestColor_IsValid(t *testing.T) {
	assert.True(t, Color{Name: ColorRed}.IsValid())
	assert.True(t, Color{Name: ColorCustom, RGBA: [4]float32{0.1, 0.2, 0.3, 1}}.IsValid())
	assert.False(t, Color{Name: ColorCustom, RGBA: [4]float32{2, 0, 0, 1}}.IsValid())
	assert.False(t, Color{Name: ColorName(99)}.IsValid())
}

func TestEnums_ParseAndText(t *testing.T) {
	k, err := ParseKind(" Browser-Tab ")
	require.NoError(t, err)
	assert.Equal(t, KindBrowserTab, k)

	_, err = ParseKind("hexagon")
	assert.ErrorIs(t, err, ErrUnknownValue)

	var align AlignHorizontal
	require.NoError(t, align.UnmarshalText([]byte("right")))
	assert.Equal(t, AlignRight, align)

	text, err := OrientationStacked.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stacked", string(text))

	assert.Equal(t, "unknown(42)", Kind(42).String())
}

func TestGroupKey(t *testing.T) {
	var zero GroupKey
	assert.False(t, zero.IsValid())

	user := UserGroupKey(1, 7)
	assert.True(t, user.IsValid())
	assert.Equal(t, "user:1/7", user.String())

	a := New(KindBox)
	a.WindowIndex = 1
	a.Space = SpaceStereotaxic
	space := SpaceGroupKey(a, UserGroupKey(2, 7))
	assert.Equal(t, GroupSpace, space.Type)
	assert.Equal(t, 7, space.UserGroupID)
	assert.Equal(t, 2, space.UserWindowIndex)
	assert.Equal(t, "space:1/3(user 2/7)", space.String())
	assert.True(t, space.UngroupedFrom(UserGroupKey(2, 7)))
	assert.False(t, space.UngroupedFrom(UserGroupKey(1, 7)))
	assert.False(t, user.UngroupedFrom(user))
	assert.True(t, space.SameGroup(GroupKey{Type: GroupSpace, WindowIndex: 1, ID: int(SpaceStereotaxic)}))
	assert.False(t, space.SameGroup(user))
}

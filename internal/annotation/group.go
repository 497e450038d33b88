package annotation

import "fmt"

// GroupType is the kind of grouping an annotation participates in.
// The zero value is the invalid sentinel.
type GroupType int

const (
	GroupInvalid GroupType = iota
	// GroupSpace collects every ungrouped annotation of a coordinate space.
	GroupSpace
	// GroupUser is a group explicitly created by the user.
	GroupUser
)

var groupTypeNames = []string{"invalid", "space", "user"}

func (g GroupType) String() string { return nameOf(int(g), groupTypeNames) }

// ParseGroupType parses a group type name.
func ParseGroupType(s string) (GroupType, error) {
	return parseName[GroupType]("group type", s, groupTypeNames)
}

func (g GroupType) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GroupType) UnmarshalText(b []byte) error { return unmarshalName(g, ParseGroupType, b) }

// GroupKey identifies the group an annotation belongs to.
//
// UserGroupID and UserWindowIndex remember the user group a space-grouped
// annotation was ungrouped from, so the user group can be restored later.
// The user group's window need not be the annotation's own window.
type GroupKey struct {
	Type            GroupType `yaml:"type" toml:"type"`
	WindowIndex     int       `yaml:"window" toml:"window"`
	ID              int       `yaml:"id" toml:"id"`
	UserGroupID     int       `yaml:"user_group_id,omitempty" toml:"user_group_id,omitempty"`
	UserWindowIndex int       `yaml:"user_window,omitempty" toml:"user_window,omitempty"`
}

// IsValid reports whether the key is not the invalid sentinel.
func (k GroupKey) IsValid() bool {
	return k.Type != GroupInvalid
}

// SameGroup reports whether both keys name the same group. The remembered
// user group is bookkeeping and does not take part in the comparison.
func (k GroupKey) SameGroup(other GroupKey) bool {
	return k.Type == other.Type && k.WindowIndex == other.WindowIndex && k.ID == other.ID
}

func (k GroupKey) String() string {
	if k.UserGroupID != 0 {
		return fmt.Sprintf("%s:%d/%d(user %d/%d)", k.Type, k.WindowIndex, k.ID, k.UserWindowIndex, k.UserGroupID)
	}
	return fmt.Sprintf("%s:%d/%d", k.Type, k.WindowIndex, k.ID)
}

// UserGroupKey returns the key of a user group.
func UserGroupKey(windowIndex, id int) GroupKey {
	return GroupKey{Type: GroupUser, WindowIndex: windowIndex, ID: id}
}

// SpaceGroupKey returns the space group key for an annotation, remembering
// from as the user group it may later be regrouped into. A zero from
// remembers nothing.
func SpaceGroupKey(a *Annotation, from GroupKey) GroupKey {
	return GroupKey{
		Type:            GroupSpace,
		WindowIndex:     a.WindowIndex,
		ID:              int(a.Space),
		UserGroupID:     from.ID,
		UserWindowIndex: from.WindowIndex,
	}
}

// UngroupedFrom reports whether k is a space key that remembers the user
// group user.
func (k GroupKey) UngroupedFrom(user GroupKey) bool {
	return k.Type == GroupSpace &&
		k.UserGroupID == user.ID &&
		k.UserWindowIndex == user.WindowIndex
}

package event

import (
	"slices"
	"strings"
)

// Topic names a notification with dot-separated segments, such as
// "annotation.file.added" or "history.merged".
//
// Subscription patterns may use "*" for exactly one segment and "**" for
// any number of segments, including none.
type Topic string

const (
	anySegment = "*"
	anySuffix  = "**"
	segmentSep = "."
)

func (t Topic) String() string { return string(t) }

// Segments splits the topic at each separator. The empty topic has none.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), segmentSep)
}

// Child appends one segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + segmentSep + Topic(segment)
}

// IsValid reports whether the topic is non-empty with no empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !slices.Contains(t.Segments(), "")
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

// match walks both segment lists, backtracking to the most recent "**"
// when a literal segment fails to line up.
func match(topic, pattern []string) bool {
	ti, pi := 0, 0
	star, resume := -1, 0
	for ti < len(topic) {
		switch {
		case pi < len(pattern) && pattern[pi] == anySuffix:
			star, resume = pi, ti
			pi++
		case pi < len(pattern) && (pattern[pi] == anySegment || pattern[pi] == topic[ti]):
			ti++
			pi++
		case star >= 0:
			resume++
			ti, pi = resume, star+1
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == anySuffix {
		pi++
	}
	return pi == len(pattern)
}

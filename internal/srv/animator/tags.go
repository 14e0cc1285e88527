package animator

import (
	"sort"
	"strings"
)

// TagSet is a set of enabled task tags. A nil TagSet enables every tag.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	ts := make(TagSet, len(tags))
	for _, tag := range tags {
		ts[tag] = struct{}{}
	}
	return ts
}

// Has reports whether tag is enabled. The empty tag is always enabled.
func (ts TagSet) Has(tag string) bool {
	if tag == "" || ts == nil {
		return true
	}
	_, ok := ts[tag]
	return ok
}

func (ts TagSet) Equal(other TagSet) bool {
	if (ts == nil) != (other == nil) {
		return false
	}
	if len(ts) != len(other) {
		return false
	}
	for tag := range ts {
		if _, ok := other[tag]; !ok {
			return false
		}
	}
	return true
}

func (ts TagSet) Clone() TagSet {
	if ts == nil {
		return nil
	}
	clone := make(TagSet, len(ts))
	for tag := range ts {
		clone[tag] = struct{}{}
	}
	return clone
}

func (ts TagSet) String() string {
	if ts == nil {
		return "*"
	}
	tags := make([]string, 0, len(ts))
	for tag := range ts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}

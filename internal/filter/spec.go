package filter

import (
	"fmt"
	"strings"
	"time"
)

// NoBound is the sentinel callers use for "no value" in an integer range.
// IntBound converts it to the nil bound the range types hold.
const NoBound = -1

// IntBound returns nil for NoBound (or any negative value) and &v otherwise.
func IntBound(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

// IntRange is a range-shaped integer filter (day numbers, people counts).
//
// Enabled changes what the pair means, not just whether End is used:
//   - Enabled false: only Start is consulted and the filter is an exact
//     match, field == *Start. A nil Start places no constraint.
//   - Enabled true: Start and End are independent inclusive bounds, each
//     nil for unbounded on that side.
//
// Start > End with Enabled true matches nothing.
type IntRange struct {
	Start   *int
	End     *int
	Enabled bool
}

// Exactly returns a disabled range matching only v.
func Exactly(v int) IntRange {
	return IntRange{Start: IntBound(v)}
}

// Between returns an enabled range with inclusive bounds; pass NoBound for
// an open side.
func Between(lo, hi int) IntRange {
	return IntRange{Start: IntBound(lo), End: IntBound(hi), Enabled: true}
}

// IsZero reports whether the range places no constraint.
func (r IntRange) IsZero() bool {
	if !r.Enabled {
		return r.Start == nil
	}
	return r.Start == nil && r.End == nil
}

// Contains reports whether v satisfies the range.
func (r IntRange) Contains(v int) bool {
	if !r.Enabled {
		return r.Start == nil || v == *r.Start
	}
	if r.Start != nil && v < *r.Start {
		return false
	}
	if r.End != nil && v > *r.End {
		return false
	}
	return true
}

// TimeRange is IntRange for timestamps; the zero time is the absent bound.
type TimeRange struct {
	Start   time.Time
	End     time.Time
	Enabled bool
}

// IsZero reports whether the range places no constraint.
func (r TimeRange) IsZero() bool {
	if !r.Enabled {
		return r.Start.IsZero()
	}
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t satisfies the range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.Enabled {
		return r.Start.IsZero() || t.Equal(r.Start)
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// SortKey is one column results can be ordered by.
type SortKey string

const (
	SortNone      SortKey = ""
	SortDate      SortKey = "date"
	SortTitle     SortKey = "title"
	SortLocation  SortKey = "location"
	SortType      SortKey = "type"
	SortPeople    SortKey = "people"
	SortExtension SortKey = "extension"
)

// ParseSortKey accepts the key names case-insensitively; "" is SortNone.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case SortNone, SortDate, SortTitle, SortLocation, SortType, SortPeople, SortExtension:
		return k, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// Sort is the requested ordering. Rank and input order always break the
// remaining ties.
type Sort struct {
	Primary   SortKey
	Secondary SortKey
}

// Spec is one structured catalog query. The zero Spec matches every active
// record the privacy threshold allows. A Spec is never modified by the
// engine.
type Spec struct {
	// Albums selects records in any of the listed albums.
	Albums []string

	// Mini-expressions, one per text field.
	Topic    string
	Title    string
	Location string
	People   string
	Tags     string

	// QuickSearch, when set, replaces the mini-expressions, exact fields,
	// ranges and sort. Albums, privacy and the date components still apply.
	QuickSearch string

	LocationExact string
	FileType      string
	FileExtension string

	DateRange        IntRange // day numbers
	CreatedAtRange   TimeRange
	PeopleCountRange IntRange

	// Date components, each a comma-separated token list.
	Days     string
	Months   string
	Years    string
	Weekdays string

	Sort Sort
}

type fieldExpr struct {
	field Field
	expr  string
}

// textFields pairs each mini-expression of s with the record field it
// filters.
func (s *Spec) textFields() []fieldExpr {
	return []fieldExpr{
		{FieldTopic, s.Topic},
		{FieldTitle, s.Title},
		{FieldLocation, s.Location},
		{FieldPeople, s.People},
		{FieldTags, s.Tags},
	}
}

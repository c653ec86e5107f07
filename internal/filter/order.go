package filter

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/runnerr0/mediacat/internal/locale"
	"github.com/runnerr0/mediacat/internal/media"
)

// OrderBy is a compiled ordering: primary key, secondary key, then rank,
// then input order.
type OrderBy struct {
	Primary   SortKey
	Secondary SortKey
}

// orderFromSort defaults an unset primary key to date.
func orderFromSort(s Sort) OrderBy {
	o := OrderBy{Primary: s.Primary, Secondary: s.Secondary}
	if o.Primary == SortNone {
		o.Primary = SortDate
	}
	if o.Secondary == o.Primary {
		o.Secondary = SortNone
	}
	return o
}

// Order returns records sorted by o. The sort is stable, so records equal
// on every key, rank included, keep their input order. The input slice is
// not modified.
func Order(records []media.Record, o OrderBy) []media.Record {
	out := make([]media.Record, len(records))
	copy(out, records)

	col := locale.NewCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		for _, k := range []SortKey{o.Primary, o.Secondary} {
			if c := compareKey(col, k, a, b); c != 0 {
				return c < 0
			}
		}
		return a.Rank < b.Rank
	})
	return out
}

func compareKey(col *collate.Collator, k SortKey, a, b *media.Record) int {
	switch k {
	case SortDate:
		return compareInt(a.Date, b.Date)
	case SortTitle:
		return compareText(col, a.Title, b.Title)
	case SortLocation:
		return compareText(col, a.Location, b.Location)
	case SortPeople:
		return compareText(col, a.People, b.People)
	case SortType:
		return compareText(col, (*string)(&a.FileType), (*string)(&b.FileType))
	case SortExtension:
		return compareText(col, &a.Extension, &b.Extension)
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareText orders nil before any value.
func compareText(col *collate.Collator, a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return col.CompareString(*a, *b)
}

package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/runnerr0/mediacat/internal/locale"
	"github.com/runnerr0/mediacat/internal/media"
)

// Dimension is one date component a record can be filtered on,
// independently of its date range.
type Dimension int

const (
	DimDay Dimension = iota
	DimMonth
	DimYear
	DimWeekday
)

func (d Dimension) String() string {
	switch d {
	case DimDay:
		return "day"
	case DimMonth:
		return "month"
	case DimYear:
		return "year"
	case DimWeekday:
		return "weekday"
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// Supports reports whether a record of precision p carries enough of its
// date to be tested on d.
func (d Dimension) Supports(p media.Precision) bool {
	switch d {
	case DimDay, DimWeekday:
		return p == media.PrecisionDay
	case DimMonth:
		return p == media.PrecisionMonth || p == media.PrecisionDay
	case DimYear:
		return p.Valid()
	}
	return false
}

// SplitTokens splits a comma-separated token list, dropping blanks.
func SplitTokens(list string) []string {
	var out []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// MatchDate reports whether a record's date satisfies one dimension. A
// record whose precision does not cover the dimension, or whose date text
// does not parse, is excluded rather than guessed at.
//
// Day matches the day number as written or without its leading zero. Month
// matches the number, its zero-padded form or the Turkish name. Year
// matches the four-digit year. Weekday (Monday first) matches the Turkish
// name, the 1-based number or its zero-padded form. Names compare with
// locale.Fold.
func MatchDate(dateText string, p media.Precision, dim Dimension, tokens []string) bool {
	if !dim.Supports(p) {
		return false
	}
	parts, err := media.ParseDate(dateText)
	if err != nil {
		return false
	}

	var accept []string
	switch dim {
	case DimDay:
		if parts.Day == 0 {
			return false
		}
		accept = []string{dateText[0:2], strconv.Itoa(parts.Day)}
	case DimMonth:
		if parts.Month == 0 {
			return false
		}
		accept = []string{
			strconv.Itoa(parts.Month),
			fmt.Sprintf("%02d", parts.Month),
			media.MonthNames[parts.Month-1],
		}
	case DimYear:
		accept = []string{dateText[6:10]}
	case DimWeekday:
		t, ok := parts.Calendar()
		if !ok {
			return false
		}
		wd := media.WeekdayIndex(t.Weekday())
		accept = []string{
			media.WeekdayNames[wd],
			strconv.Itoa(wd + 1),
			fmt.Sprintf("%02d", wd+1),
		}
	default:
		return false
	}

	for _, tok := range tokens {
		ft := locale.Fold(tok)
		for _, a := range accept {
			if ft == locale.Fold(a) {
				return true
			}
		}
	}
	return false
}

type dimPass struct {
	dim    Dimension
	tokens []string
}

// dimensionPasses lists the date-component passes of spec in the order
// they run, skipping empty ones.
func dimensionPasses(spec *Spec) []dimPass {
	var out []dimPass
	for _, p := range []dimPass{
		{DimDay, SplitTokens(spec.Days)},
		{DimMonth, SplitTokens(spec.Months)},
		{DimYear, SplitTokens(spec.Years)},
		{DimWeekday, SplitTokens(spec.Weekdays)},
	} {
		if len(p.tokens) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// ApplyDateDimensions narrows records by each requested date component in
// turn: days, months, years, weekdays. Every pass keeps the order of its
// input and feeds the next one.
func ApplyDateDimensions(records []media.Record, spec Spec) []media.Record {
	for _, p := range dimensionPasses(&spec) {
		records = filterDimension(records, p.dim, p.tokens)
	}
	return records
}

func filterDimension(records []media.Record, dim Dimension, tokens []string) []media.Record {
	out := make([]media.Record, 0, len(records))
	for i := range records {
		if MatchDate(records[i].DateText, records[i].Precision, dim, tokens) {
			out = append(out, records[i])
		}
	}
	return out
}

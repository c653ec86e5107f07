package media

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Precision says how much of a record's date is known.
type Precision int

const (
	PrecisionYear  Precision = 1
	PrecisionMonth Precision = 3
	PrecisionDay   Precision = 7
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	default:
		return fmt.Sprintf("precision(%d)", int(p))
	}
}

// Valid reports whether p is one of the three known precisions.
func (p Precision) Valid() bool {
	return p == PrecisionYear || p == PrecisionMonth || p == PrecisionDay
}

// ErrDateFormat is returned when a date text is not DD.MM.YYYY.
var ErrDateFormat = errors.New("date is not in DD.MM.YYYY form")

// daysToUnixEpoch is the number of days from 0001-01-01 to 1970-01-01.
const daysToUnixEpoch = 719162

// DateParts is a decomposed DD.MM.YYYY date. Zero Day or Month means unknown.
type DateParts struct {
	Day   int
	Month int
	Year  int
}

// ParseDate splits a DD.MM.YYYY text into its components. Components are
// taken as written; use Calendar to check the date is real.
func ParseDate(text string) (DateParts, error) {
	if len(text) != 10 || text[2] != '.' || text[5] != '.' {
		return DateParts{}, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	day, err1 := atoiDigits(text[0:2])
	month, err2 := atoiDigits(text[3:5])
	year, err3 := atoiDigits(text[6:10])
	if err1 != nil || err2 != nil || err3 != nil {
		return DateParts{}, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	if month > 12 || day > 31 || year == 0 {
		return DateParts{}, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	return DateParts{Day: day, Month: month, Year: year}, nil
}

func atoiDigits(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// ParseLooseDate accepts YYYY, MM.YYYY or DD.MM.YYYY and infers the
// precision from the form used.
func ParseLooseDate(s string) (DateParts, Precision, error) {
	s = strings.TrimSpace(s)
	switch strings.Count(s, ".") {
	case 0:
		year, err := atoiDigits(s)
		if err != nil || len(s) != 4 || year == 0 {
			return DateParts{}, 0, fmt.Errorf("%w: %q", ErrDateFormat, s)
		}
		return DateParts{Year: year}, PrecisionYear, nil
	case 1:
		parts, err := ParseDate("00." + s)
		if err != nil || parts.Month == 0 {
			return DateParts{}, 0, fmt.Errorf("%w: %q", ErrDateFormat, s)
		}
		return parts, PrecisionMonth, nil
	default:
		parts, err := ParseDate(s)
		if err != nil {
			return DateParts{}, 0, err
		}
		if _, ok := parts.Calendar(); !ok {
			return DateParts{}, 0, fmt.Errorf("%w: %q is not a calendar date", ErrDateFormat, s)
		}
		return parts, PrecisionDay, nil
	}
}

// Text formats the parts as DD.MM.YYYY.
func (d DateParts) Text() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// Calendar returns the UTC midnight of the date when day, month and year
// are all known and form a real calendar date.
func (d DateParts) Calendar() (time.Time, bool) {
	if d.Day == 0 || d.Month == 0 || d.Year == 0 {
		return time.Time{}, false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || int(t.Month()) != d.Month {
		return time.Time{}, false
	}
	return t, true
}

// DayNumber is the number of days since 0001-01-01 of the first day the
// known parts cover. Unknown day or month count as 1.
func (d DateParts) DayNumber() int {
	day, month := d.Day, d.Month
	if day == 0 {
		day = 1
	}
	if month == 0 {
		month = 1
	}
	t := time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(t.Unix()/86400) + daysToUnixEpoch
}

// DayNumberOf converts a calendar time to a day number.
func DayNumberOf(t time.Time) int {
	y, m, d := t.Date()
	return DateParts{Day: d, Month: int(m), Year: y}.DayNumber()
}

// Truncate zeroes the components the precision does not cover.
func (d DateParts) Truncate(p Precision) DateParts {
	switch p {
	case PrecisionYear:
		return DateParts{Year: d.Year}
	case PrecisionMonth:
		return DateParts{Month: d.Month, Year: d.Year}
	}
	return d
}

package normalize

import (
	"strings"
	"time"

	"github.com/agentstation/revcheck/pkg/ledger"
)

// Date is a calendar date parsed from free text. The zero Date is Unknown.
type Date struct {
	year  int
	month time.Month
	day   int
	known bool
}

// dateLayout is one accepted input format. Two-digit-year layouts get the
// century pivot applied after parsing.
type dateLayout struct {
	layout    string
	shortYear bool
}

// dateLayouts are tried in order; the first full parse wins. The order is
// significant for ambiguous input such as "01-02-03" or "03/04/2020".
var dateLayouts = []dateLayout{
	{layout: "1/2/2006"},                  // month/day/4-digit-year
	{layout: "2-Jan-06", shortYear: true}, // day-month-abbrev-2-digit-year
	{layout: "2-Jan-2006"},                // day-month-abbrev-4-digit-year
	{layout: "1/2/06", shortYear: true},   // month/day/2-digit-year
	{layout: "2/1/2006"},                  // day/month/4-digit-year
	{layout: "2006-1-2"},                  // ISO year-month-day
	{layout: "2-1-2006"},                  // day-month-4-digit-year
	{layout: "2-1-06", shortYear: true},   // day-month-2-digit-year
}

// ParseDate parses s against the accepted layouts. Blank or unparseable
// input yields Unknown. Years below 100 are pivoted: below 50 maps to the
// 2000s, 50 and above to the 1900s.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		year := t.Year()
		if l.shortYear {
			year %= 100
		}
		if year < 100 {
			year = pivotYear(year)
		}
		return Date{year: year, month: t.Month(), day: t.Day(), known: true}
	}
	return Date{}
}

// ParseValue parses a cell value; Unknown stays Unknown.
func ParseValue(v ledger.Value) Date {
	if v.IsUnknown() {
		return Date{}
	}
	return ParseDate(v.String())
}

// NewDate builds a known date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day, known: true}
}

// IsUnknown reports whether no date could be parsed.
func (d Date) IsUnknown() bool {
	return !d.known
}

// Time returns the date at midnight UTC, or the zero time for Unknown.
func (d Date) Time() time.Time {
	if !d.known {
		return time.Time{}
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD, or "" for Unknown.
func (d Date) String() string {
	if !d.known {
		return ""
	}
	return d.Time().Format(time.DateOnly)
}

// DatesEqual compares calendar dates. Two Unknowns are equal; Unknown
// never equals a known date.
func DatesEqual(a, b Date) bool {
	if !a.known || !b.known {
		return a.known == b.known
	}
	return a.year == b.year && a.month == b.month && a.day == b.day
}

func pivotYear(yy int) int {
	if yy < 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

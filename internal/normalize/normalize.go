package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a plain calendar date with no time component and no timezone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// BR formats the date as DD/MM/YYYY.
func (d Date) BR() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// Today returns the current calendar date (UTC).
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Spreadsheet day serials count from the day before 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate converts a cell into a calendar date.
//
// Strings must be DD/MM/YY or DD/MM/YYYY; two-digit years above 50 expand to
// 19xx, the rest to 20xx. Numbers are day serials from the spreadsheet epoch.
// Blank or malformed cells yield nil rather than an error: the pipelines drop
// bad fields instead of failing the row.
func ParseDate(c Cell) *Date {
	switch c.Kind {
	case KindString:
		return parseDateString(c.String)
	case KindNumber:
		t := serialEpoch.AddDate(0, 0, int(c.Number))
		return &Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	}
	return nil
}

func parseDateString(s string) *Date {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return nil
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	ys := strings.TrimSpace(parts[2])
	year, err := strconv.Atoi(ys)
	if err != nil {
		return nil
	}
	if len(ys) == 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}
	return &Date{Year: year, Month: month, Day: day}
}

// ParseClock converts a cell into an HH:MM:SS wall-clock time.
//
// Strings must contain a colon; when several times are separated by "/" only
// the first is kept, and HH:MM gains a ":00" seconds segment. Numbers are
// fractional-day serials rounded to the nearest minute.
func ParseClock(c Cell) *string {
	switch c.Kind {
	case KindString:
		s := strings.TrimSpace(c.String)
		if s == "" || !strings.Contains(s, ":") {
			return nil
		}
		if i := strings.Index(s, "/"); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		if strings.Count(s, ":") == 1 {
			s += ":00"
		}
		return &s
	case KindNumber:
		total := int(math.Round(c.Number * 24 * 60))
		// Serials at the upper edge round to a full day; wrap to midnight.
		total %= 24 * 60
		s := fmt.Sprintf("%02d:%02d:00", total/60, total%60)
		return &s
	}
	return nil
}

// ParseMoney converts a cell into a monetary amount.
//
// Numbers pass through, except that a zero cell is treated as unset. Strings
// are stripped of the "R$" prefix, thousands dots and the decimal comma
// before parsing; anything non-numeric after cleaning yields nil.
func ParseMoney(c Cell) *float64 {
	switch c.Kind {
	case KindNumber:
		if c.Number == 0 {
			return nil
		}
		v := c.Number
		return &v
	case KindString:
		cleaned := strings.ReplaceAll(c.String, "R$", "")
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil
		}
		v, _ := d.Float64()
		return &v
	}
	return nil
}

// ParseText trims a cell's value; blank cells yield nil. Numeric cells are
// rendered back to their shortest decimal form.
func ParseText(c Cell) *string {
	switch c.Kind {
	case KindString:
		s := strings.TrimSpace(c.String)
		if s == "" {
			return nil
		}
		return &s
	case KindNumber:
		s := strconv.FormatFloat(c.Number, 'f', -1, 64)
		return &s
	}
	return nil
}

// ParseInt reads a small integer from a cell, tolerating numeric serials and
// digit strings. Non-integers yield nil.
func ParseInt(c Cell) *int {
	switch c.Kind {
	case KindNumber:
		n := int(c.Number)
		if float64(n) != c.Number {
			return nil
		}
		return &n
	case KindString:
		n, err := strconv.Atoi(strings.TrimSpace(c.String))
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

// AnnexSet reads a contiguous run of marker columns representing one annex
// catalog and returns the 1-based positions whose cell carries a truthy
// marker. A run with no marks yields nil, never an empty set, so "not
// applicable" stays distinct from "applicable with zero items".
func AnnexSet(cells []Cell) []int {
	var set []int
	for i, c := range cells {
		if truthyMarker(c) {
			set = append(set, i+1)
		}
	}
	return set
}

func truthyMarker(c Cell) bool {
	switch c.Kind {
	case KindNumber:
		return c.Number != 0
	case KindString:
		s := strings.TrimSpace(c.String)
		return s != "" && s != "0"
	}
	return false
}

// CollapseSpaces folds runs of whitespace into single spaces and trims the
// ends. Used to normalize status labels read from spreadsheets.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

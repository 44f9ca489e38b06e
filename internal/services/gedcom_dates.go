package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var gedcomDatePrefixes = []string{"ABT ", "BEF ", "AFT ", "CAL ", "EST ", "FROM ", "TO "}

var gedcomMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// ParseGedcomDate normalizes a GEDCOM date expression into a calendar
// date usable for sorting. Approximation prefixes are stripped, ranges
// keep their lower bound, missing month/day default to 1. An expression
// outside the grammar yields nil, which is not a warning.
func ParseGedcomDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}

	upper := strings.ToUpper(s)
	for _, prefix := range gedcomDatePrefixes {
		if strings.HasPrefix(upper, prefix) {
			upper = strings.TrimSpace(upper[len(prefix):])
			break
		}
	}
	if strings.HasPrefix(upper, "BET ") {
		upper = strings.TrimSpace(upper[len("BET "):])
		if idx := strings.Index(upper, " AND "); idx >= 0 {
			upper = strings.TrimSpace(upper[:idx])
		}
	}

	fields := strings.Fields(upper)
	day, month, year := 1, time.January, 0
	switch len(fields) {
	case 3:
		d, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil
		}
		day = d
		m, ok := gedcomMonths[fields[1]]
		if !ok {
			return nil
		}
		month = m
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil
		}
		year = y
	case 2:
		m, ok := gedcomMonths[fields[0]]
		if !ok {
			return nil
		}
		month = m
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil
		}
		year = y
	case 1:
		y, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil
		}
		year = y
	default:
		return nil
	}

	if year <= 0 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 FEB becomes March), which would
	// silently invent a date; reject anything that moved.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return nil
	}
	return &t
}

// ParseGedcomCoordinate parses a hemisphere-prefixed decimal such as
// "N51.5" or "W0.12". South and west negate; a bare number is positive.
func ParseGedcomCoordinate(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	negate := false
	switch s[0] {
	case 'N', 'n', 'E', 'e':
		s = s[1:]
	case 'S', 's', 'W', 'w':
		s = s[1:]
		negate = true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if negate {
		f = -f
	}
	return f, true
}

// FormatGedcomLatitude is the inverse of ParseGedcomCoordinate for the
// N/S axis.
func FormatGedcomLatitude(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("N%v", v)
	}
	return fmt.Sprintf("S%v", math.Abs(v))
}

// FormatGedcomLongitude is the inverse of ParseGedcomCoordinate for the
// E/W axis.
func FormatGedcomLongitude(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("E%v", v)
	}
	return fmt.Sprintf("W%v", math.Abs(v))
}

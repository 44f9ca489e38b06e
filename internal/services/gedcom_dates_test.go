package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseGedcomDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"1 JAN 1900", date(1900, time.January, 1)},
		{"12 MAR 1910", date(1910, time.March, 12)},
		{"JAN 1842", date(1842, time.January, 1)},
		{"1842", date(1842, time.January, 1)},
		{"ABT 1850", date(1850, time.January, 1)},
		{"BEF 12 MAR 1910", date(1910, time.March, 12)},
		{"AFT 1900", date(1900, time.January, 1)},
		{"EST JUN 1875", date(1875, time.June, 1)},
		{"BET 1850 AND 1860", date(1850, time.January, 1)},
		{"FROM 1900 TO 1910", nil},
		{"31 FEB 1900", nil},
		{"13 XXX 1900", nil},
		{"sometime long ago", nil},
		{"0", nil},
		{"", nil},
		{"  ", nil},
	}
	for _, tt := range tests {
		got := ParseGedcomDate(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseGedcomDate(%q) = %v, want nil", tt.in, got)
		case tt.want != nil && got == nil:
			t.Errorf("ParseGedcomDate(%q) = nil, want %v", tt.in, tt.want)
		case tt.want != nil && !got.Equal(*tt.want):
			t.Errorf("ParseGedcomDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseGedcomCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"N51.5", 51.5, true},
		{"S33.86", -33.86, true},
		{"E151.2", 151.2, true},
		{"W0.12", -0.12, true},
		{"42.0", 42.0, true},
		{"n12.5", 12.5, true},
		{"", 0, false},
		{"Nnorth", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseGedcomCoordinate(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseGedcomCoordinate(%q) = (%v, %v), want (%v, %v)",
				tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	values := []float64{51.5, -33.86, 0, 179.999, -0.12}
	for _, v := range values {
		lat := FormatGedcomLatitude(v)
		got, ok := ParseGedcomCoordinate(lat)
		if !ok || got != v {
			t.Errorf("latitude round trip %v via %q = (%v, %v)", v, lat, got, ok)
		}
		lon := FormatGedcomLongitude(v)
		got, ok = ParseGedcomCoordinate(lon)
		if !ok || got != v {
			t.Errorf("longitude round trip %v via %q = (%v, %v)", v, lon, got, ok)
		}
	}
}

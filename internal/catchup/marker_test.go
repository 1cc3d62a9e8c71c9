package catchup_test

import (
	"testing"

	"calboss/internal/catchup"
)

func TestParseCadenceHint(t *testing.T) {
	tests := []struct {
		name   string
		desc   string
		months int
		ok     bool
	}{
		{name: "canonical", desc: "Frequency: 6 months", months: 6, ok: true},
		{name: "lower case", desc: "frequency: 3 months", months: 3, ok: true},
		{name: "upper case no space", desc: "FREQUENCY:12MONTHS", months: 12, ok: true},
		{name: "embedded in note", desc: "Coffee at Moe's\nFrequency: 9 months\nbring book", months: 9, ok: true},
		{name: "singular", desc: "Frequency: 1 month", months: 1, ok: true},
		{name: "missing", desc: "Lunch downtown", ok: false},
		{name: "empty", desc: "", ok: false},
		{name: "no number", desc: "Frequency: often months", ok: false},
		{name: "wrong unit", desc: "Frequency: 3 weeks", ok: false},
		{name: "zero", desc: "Frequency: 0 months", ok: false},
		{name: "at cap", desc: "Frequency: 1200 months", months: 1200, ok: true},
		{name: "above cap", desc: "Frequency: 1201 months", ok: false},
		{name: "int64 max", desc: "Frequency: 9223372036854775807 months", ok: false},
		{name: "overflows int", desc: "Frequency: 99999999999999999999 months", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			months, ok := catchup.ParseCadenceHint(tt.desc)
			if ok != tt.ok || months != tt.months {
				t.Errorf("ParseCadenceHint(%q) = (%d, %v), want (%d, %v)", tt.desc, months, ok, tt.months, tt.ok)
			}
		})
	}
}

func TestFormatCadenceHintRoundTrip(t *testing.T) {
	months, ok := catchup.ParseCadenceHint(catchup.FormatCadenceHint(4))
	if !ok || months != 4 {
		t.Errorf("expected 4 months, got (%d, %v)", months, ok)
	}
}

func TestMarker(t *testing.T) {
	m := catchup.Marker{Prefix: "[Catch-Up]"}

	if got := m.Title("  Aunt Gina "); got != "[Catch-Up] Aunt Gina" {
		t.Errorf("Title() = %q", got)
	}

	tests := []struct {
		title string
		name  string
		ok    bool
	}{
		{"[Catch-Up] Lisa", "Lisa", true},
		{"[Catch-Up]Nick", "Nick", true},
		{"[Catch-Up]   ", "", false},
		{"Catch-Up with Lisa", "", false},
		{"lunch [Catch-Up] Lisa", "", false},
	}
	for _, tt := range tests {
		name, ok := m.Name(tt.title)
		if ok != tt.ok || name != tt.name {
			t.Errorf("Name(%q) = (%q, %v), want (%q, %v)", tt.title, name, ok, tt.name, tt.ok)
		}
	}
}

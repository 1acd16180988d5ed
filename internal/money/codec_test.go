package money

import (
	"testing"
)

func TestParseToMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "decimal dot", input: "12.34", want: 1234},
		{name: "decimal comma", input: "12,34", want: 1234},
		{name: "thousands dot before comma", input: "1.234,56", want: 123456},
		{name: "multiple thousands dots", input: "1.234.567,89", want: 123456789},
		{name: "whole number", input: "45", want: 4500},
		{name: "currency symbol", input: "€ 45,00", want: 4500},
		{name: "internal whitespace", input: " 1 234,50 ", want: 123450},
		{name: "comma only cents", input: "0,05", want: 5},
		{name: "single decimal digit", input: "7,5", want: 750},
		{name: "rounds half up", input: "0.005", want: 1},
		{name: "rounds down below half", input: "0.004", want: 0},
		{name: "negative", input: "-12,34", want: -1234},
		{name: "empty resolves to zero", input: "", want: 0},
		{name: "garbage resolves to zero", input: "abc", want: 0},
		{name: "lone separator resolves to zero", input: ",", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseToMinorUnits(tt.input); got != tt.want {
				t.Errorf("ParseToMinorUnits(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "zero", cents: 0, want: "€ 0,00"},
		{name: "under a euro", cents: 5, want: "€ 0,05"},
		{name: "grouping", cents: 123456, want: "€ 1.234,56"},
		{name: "plain euros", cents: 4500, want: "€ 45,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinorUnits(tt.cents); got != tt.want {
				t.Errorf("FormatMinorUnits(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

// Formatted output must parse back to the exact same minor units.
func TestRoundTrip(t *testing.T) {
	values := []int64{0, 1, 5, 99, 100, 101, 4500, 123456, 205000, 72656, 99999999}
	for _, cents := range values {
		formatted := FormatMinorUnits(cents)
		if got := ParseToMinorUnits(formatted); got != cents {
			t.Errorf("round trip of %d through %q gave %d", cents, formatted, got)
		}
	}
	for cents := int64(0); cents < 3000; cents++ {
		if got := ParseToMinorUnits(FormatMinorUnits(cents)); got != cents {
			t.Fatalf("round trip failed at %d", cents)
		}
	}
}

// Values past float64's 53-bit integer range must render exactly.
func TestFormatMinorUnitsLargeAmounts(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "above float53", cents: 9007199254740993, want: "€ 90.071.992.547.409,93"},
		{name: "negative", cents: -4550, want: "€ -45,50"},
		{name: "negative under a euro", cents: -7, want: "€ -0,07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinorUnits(tt.cents); got != tt.want {
				t.Errorf("FormatMinorUnits(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

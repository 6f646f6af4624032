package common

import "testing"

func TestParseAmount_Strings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"european grouping", "1.234,56", 1234.56},
		{"us grouping", "1,234.56", 1234.56},
		{"plain integer", "1234", 1234},
		{"plain decimal", "1234.56", 1234.56},
		{"currency symbol european", "$ 1.234,56", 1234.56},
		{"currency symbol us", "$1,234.56", 1234.56},
		{"negative", "-250,75", -250.75},
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"garbage", "garbage", 0},
		{"mixed garbage", "abc12def", 12},
		{"comma only decimal", "1234,56", 1234.56},
		// Grouped integers without a decimal hint are ambiguous; the
		// heuristic keeps the sheet importer's reading.
		{"ambiguous comma group", "1,234", 1.234},
		{"ambiguous period group", "₲ 150.000", 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in)
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmount_NonStrings(t *testing.T) {
	if got := ParseAmount(42); got != 42 {
		t.Errorf("ParseAmount(42) = %v, want 42", got)
	}
	if got := ParseAmount(42.5); got != 42.5 {
		t.Errorf("ParseAmount(42.5) = %v, want 42.5", got)
	}
	if got := ParseAmount(int64(7)); got != 7 {
		t.Errorf("ParseAmount(int64(7)) = %v, want 7", got)
	}
	if got := ParseAmount(nil); got != 0 {
		t.Errorf("ParseAmount(nil) = %v, want 0", got)
	}
	if got := ParseAmount(struct{}{}); got != 0 {
		t.Errorf("ParseAmount(struct{}{}) = %v, want 0", got)
	}
}

package common

import (
	"strconv"
	"strings"
)

// ParseAmount normalizes a locale-formatted monetary value into a float64.
// It accepts numbers, numeric strings with currency symbols and either
// US ("1,234.56") or European/Latin ("1.234,56") grouping, and returns 0 for
// empty or unparseable input. Never fails: the caller always gets a usable
// number.
//
// Known ambiguity, kept from the upstream sheet importer: a grouped integer
// with a comma and no period ("1,234") is read as European, yielding 1.234.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

// parseAmountString applies the comma/period disambiguation heuristic.
func parseAmountString(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := strings.TrimSpace(b.String())
	if clean == "" {
		return 0
	}

	// Comma after the period means European grouping: periods are thousands
	// separators, the comma is the decimal point.
	if strings.Contains(clean, ",") && strings.Index(clean, ",") > strings.Index(clean, ".") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	result, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return result
}

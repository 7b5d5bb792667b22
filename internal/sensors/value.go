package sensors

import (
	"strconv"
	"strings"
)

// ParseValueString coerces a locale-formatted currency string (for
// example "€1,792,790.00") into its numeric value. Thousands separators
// are stripped first, then every rune that is not a digit or decimal
// point, which also discards any embedded currency symbol. An empty or
// unparsable result reports ok=false; callers must treat that as a null
// value, never substitute a number.
func ParseValueString(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

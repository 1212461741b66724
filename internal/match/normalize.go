package match

import (
	"math"
	"strconv"
	"strings"
)

// normalizeValue produces the comparison form for the exact tier:
// trimmed, lowercased, thousands separators and spaces removed.
func normalizeValue(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// parseNumeric parses a value after stripping separators and percent
// signs. The bool reports whether the value is numeric at all.
func parseNumeric(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// numericMatch applies the relative-difference rule: both zero match,
// exactly one zero never matches, otherwise the difference relative to
// the larger magnitude must stay within tolerance.
func numericMatch(a, b, tolerance float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	if a == 0 || b == 0 {
		return false
	}

	diff := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
	return diff <= tolerance
}

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dkorolev/crossfoot/internal/model"
)

// Data-type patterns tried in fixed priority order; the first match wins.
// Percentage outranks decimal, so "12.5%" classifies as percentage even
// though both patterns accept it.
var dataTypePatterns = []struct {
	kind    model.DataType
	pattern *regexp.Regexp
}{
	{model.DataPercentage, regexp.MustCompile(`^[\d.,]+%$`)},
	{model.DataCurrency, regexp.MustCompile(`(?i)^[$₹€£][\d,.]+ ?[KMB]?$`)},
	{model.DataRatio, regexp.MustCompile(`(?i)^[\d.]+:[\d.]+$|^[\d.]+x$`)},
	{model.DataDecimal, regexp.MustCompile(`^[\d,]*\.\d+%?$`)},
	{model.DataGrowth, regexp.MustCompile(`^[+-][\d.,]+%?$`)},
	{model.DataInteger, regexp.MustCompile(`^[\d,]+$`)},
}

// ClassifyDataType tags a raw cell or claim value. Values matching no
// pattern classify as text, unless stripping spaces, dots and commas
// leaves pure digits, in which case the value is unknown rather than
// prose.
func ClassifyDataType(value string) model.DataType {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return model.DataUnknown
	}

	for _, p := range dataTypePatterns {
		if p.pattern.MatchString(trimmed) {
			return p.kind
		}
	}

	stripped := strings.NewReplacer(" ", "", ".", "", ",", "").Replace(trimmed)
	if stripped != "" && isDigits(stripped) {
		return model.DataUnknown
	}
	return model.DataText
}

// isNumericValue reports whether the value matches any numeric pattern.
// Header candidates must fail this check.
func isNumericValue(value string) bool {
	for _, p := range dataTypePatterns {
		if p.pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

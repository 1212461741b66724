package extract

import (
	"testing"

	"github.com/dkorolev/crossfoot/internal/model"
)

func TestClassifyDataType(t *testing.T) {
	tests := []struct {
		value string
		want  model.DataType
	}{
		{"45%", model.DataPercentage},
		{"3.5%", model.DataPercentage},
		{"$1,234", model.DataCurrency},
		{"€2.5M", model.DataCurrency},
		{"₹2,759", model.DataCurrency},
		{"1.5:1", model.DataRatio},
		{"12.5x", model.DataRatio},
		{"12.5X", model.DataRatio},
		{"3.14", model.DataDecimal},
		{"1,234.56", model.DataDecimal},
		{"+5.2%", model.DataGrowth},
		{"-3", model.DataGrowth},
		{"1,234", model.DataInteger},
		{"2759", model.DataInteger},
		{"Revenue", model.DataText},
		{"₹2,759 Cr", model.DataText},
		{"", model.DataUnknown},
		{"1 234", model.DataUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := ClassifyDataType(tt.value); got != tt.want {
				t.Errorf("ClassifyDataType(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// A value like "12.5%" satisfies both the percentage and the decimal
// pattern; classification must resolve it by priority order, not by
// accident of map iteration.
func TestClassifyDataTypePriority(t *testing.T) {
	const value = "12.5%"

	decimal := dataTypePatterns[3]
	if decimal.kind != model.DataDecimal {
		t.Fatalf("pattern order changed: index 3 is %q", decimal.kind)
	}
	if !decimal.pattern.MatchString(value) {
		t.Fatalf("expected decimal pattern to also match %q", value)
	}

	if got := ClassifyDataType(value); got != model.DataPercentage {
		t.Errorf("ClassifyDataType(%q) = %q, want %q", value, got, model.DataPercentage)
	}
}

func TestIsNumericValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"2759", true},
		{"45%", true},
		{"12.5x", true},
		{"$1,234", true},
		{"Domestic", false},
		{"FY24", false},
		{"Growth Rate", false},
	}

	for _, tt := range tests {
		if got := isNumericValue(tt.value); got != tt.want {
			t.Errorf("isNumericValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

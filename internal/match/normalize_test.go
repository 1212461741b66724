package match

import "testing"

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2759", "2759"},
		{" 1,234 ", "1234"},
		{"Revenue Mix", "revenuemix"},
		{"₹2,759 Cr", "₹2759cr"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeValue(tt.in); got != tt.want {
			t.Errorf("normalizeValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"2759", 2759, true},
		{"1,234", 1234, true},
		{"45%", 45, true},
		{" 100.5 ", 100.5, true},
		{"-3.2%", -3.2, true},
		{"₹2,759", 0, false},
		{"12.5x", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumeric(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseNumeric(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNumericMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{"within tolerance", 100, 100.5, true},
		{"outside tolerance", 100, 102, false},
		{"both zero", 0, 0, true},
		{"one zero", 0, 5, false},
		{"other zero", 5, 0, false},
		{"negative within", -100, -100.5, true},
		{"identical", 2759, 2759, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numericMatch(tt.a, tt.b, 0.01); got != tt.want {
				t.Errorf("numericMatch(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

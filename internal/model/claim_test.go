package model

import "testing"

func TestBBoxClamp(t *testing.T) {
	tests := []struct {
		name string
		box  BBox
		want BBox
	}{
		{"inside", BBox{0.1, 0.2, 0.3, 0.4}, BBox{0.1, 0.2, 0.3, 0.4}},
		{"negative coords", BBox{-0.5, -0.2, 0.3, 0.4}, BBox{0, 0, 0.3, 0.4}},
		{"above one", BBox{0.1, 0.2, 1.7, 2.3}, BBox{0.1, 0.2, 1, 1}},
		{"inverted x", BBox{0.6, 0.2, 0.3, 0.4}, BBox{0.3, 0.2, 0.6, 0.4}},
		{"inverted y", BBox{0.1, 0.8, 0.3, 0.4}, BBox{0.1, 0.4, 0.3, 0.8}},
		{"zero width", BBox{0.5, 0.2, 0.5, 0.4}, BBox{0.5, 0.2, 0.51, 0.4}},
		{"zero height", BBox{0.1, 0.3, 0.4, 0.3}, BBox{0.1, 0.3, 0.4, 0.31}},
		{"point at origin", BBox{0, 0, 0, 0}, BBox{0, 0, 0.01, 0.01}},
		{"point at far corner", BBox{1, 1, 1, 1}, BBox{0.99, 0.99, 1, 1}},
		{"far out of range", BBox{-3, 5, 9, -2}, BBox{0, 0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Clamp()
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Fatalf("Clamp(%v) = %v, want %v", tt.box, got, tt.want)
				}
			}
		})
	}
}

func TestBBoxClampIdempotent(t *testing.T) {
	boxes := []BBox{
		{-0.5, -0.2, 1.3, 1.4},
		{0.7, 0.9, 0.1, 0.1},
		{1, 1, 1, 1},
	}
	for _, box := range boxes {
		once := box.Clamp()
		twice := once.Clamp()
		for i := range once {
			if !almostEqual(once[i], twice[i]) {
				t.Errorf("Clamp not idempotent for %v: %v then %v", box, once, twice)
			}
		}
	}
}

func TestBBoxCenter(t *testing.T) {
	x, y := (BBox{0.2, 0.4, 0.6, 0.8}).Center()
	if !almostEqual(x, 0.4) || !almostEqual(y, 0.6) {
		t.Errorf("Center() = (%v, %v), want (0.4, 0.6)", x, y)
	}
}

func TestDefaultBBoxIsValid(t *testing.T) {
	box := DefaultBBox()
	if box != box.Clamp() {
		t.Errorf("DefaultBBox() = %v changes under Clamp to %v", box, box.Clamp())
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkorolev/crossfoot/internal/model"
)

func TestParseClaimsEnvelope(t *testing.T) {
	data := []byte(`{"claims": [
		{"id": "pdf_value_1", "value": "2759", "description": "Total revenue"},
		{"id": "pdf_value_2", "value": "44%", "category": "margin"}
	]}`)

	claims, err := ParseClaims(data)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2", len(claims))
	}
	if claims[0].ID != "pdf_value_1" || claims[1].ID != "pdf_value_2" {
		t.Errorf("ids not preserved: %q, %q", claims[0].ID, claims[1].ID)
	}
	if claims[1].Category != "margin" {
		t.Errorf("category = %q, want margin", claims[1].Category)
	}
}

func TestParseClaimsBareArray(t *testing.T) {
	data := []byte(`[
		{"value": "2759"},
		{"value": "1916"}
	]`)

	claims, err := ParseClaims(data)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2", len(claims))
	}
}

// Missing ids are assigned from the source position, so an id stays
// stable even when earlier entries are dropped.
func TestParseClaimsAssignsPositionalIDs(t *testing.T) {
	data := []byte(`{"claims": [
		{"value": "2759"},
		{"value": ""},
		{"value": "44%"}
	]}`)

	claims, err := ParseClaims(data)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2 (empty value dropped)", len(claims))
	}
	if claims[0].ID != "pdf_value_1" {
		t.Errorf("claims[0].ID = %q, want pdf_value_1", claims[0].ID)
	}
	if claims[1].ID != "pdf_value_3" {
		t.Errorf("claims[1].ID = %q, want pdf_value_3", claims[1].ID)
	}
}

func TestParseClaimsDefaults(t *testing.T) {
	data := []byte(`{"claims": [{"value": "2,759"}]}`)

	claims, err := ParseClaims(data)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	c := claims[0]
	if c.Category != model.CategoryOther {
		t.Errorf("Category = %q, want %q", c.Category, model.CategoryOther)
	}
	if c.DataType != string(model.DataInteger) {
		t.Errorf("DataType = %q, want %q", c.DataType, model.DataInteger)
	}
	if c.BBox == nil {
		t.Fatal("BBox is nil, want default box")
	}
	if *c.BBox != model.DefaultBBox() {
		t.Errorf("BBox = %v, want %v", *c.BBox, model.DefaultBBox())
	}
}

func TestParseClaimsClampsBBox(t *testing.T) {
	tests := []struct {
		name string
		bbox string
		want model.BBox
	}{
		{"out of range", `[-0.5, 0.2, 1.7, 0.4]`, model.BBox{0, 0.2, 1, 0.4}},
		{"inverted corners", `[0.6, 0.8, 0.3, 0.4]`, model.BBox{0.3, 0.4, 0.6, 0.8}},
		{"degenerate point", `[0.5, 0.5, 0.5, 0.5]`, model.BBox{0.5, 0.5, 0.51, 0.51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"claims": [{"value": "2759", "bbox": ` + tt.bbox + `}]}`)
			claims, err := ParseClaims(data)
			if err != nil {
				t.Fatalf("ParseClaims: %v", err)
			}
			if claims[0].BBox == nil {
				t.Fatal("BBox is nil")
			}
			got := *claims[0].BBox
			for i := range got {
				diff := got[i] - tt.want[i]
				if diff > 1e-9 || diff < -1e-9 {
					t.Fatalf("BBox = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseClaimsInvalidJSON(t *testing.T) {
	if _, err := ParseClaims([]byte(`{"claims": not-json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ParseClaims([]byte(`"just a string"`)); err == nil {
		t.Error("expected error for non-claims JSON")
	}
}

func TestLoadClaims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.json")
	content := []byte(`{"claims": [{"id": "pdf_value_1", "value": "2759"}]}`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	claims, err := LoadClaims(path)
	if err != nil {
		t.Fatalf("LoadClaims: %v", err)
	}
	if len(claims) != 1 || claims[0].ID != "pdf_value_1" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := LoadClaims(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

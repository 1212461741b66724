package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkorolev/crossfoot/internal/model"
)

func testRecords() []model.CellContext {
	return []model.CellContext{
		{
			SheetName:   "P&L",
			TableTitle:  "Revenue Mix",
			TableType:   model.TableFinancialRatios,
			RowHeaders:  []string{"Domestic"},
			ColHeaders:  []string{"FY24"},
			CellAddress: "B4",
			Value:       "62%",
			DataType:    model.DataPercentage,
			FullContext: "Sheet: P&L | Table: Revenue Mix | Type: financial_ratios | Row: Domestic | Column: FY24 | Value: 62% | DataType: percentage",
		},
		{
			SheetName:   "P&L",
			TableTitle:  "Revenue Mix",
			TableType:   model.TableFinancialRatios,
			RowHeaders:  []string{"Export"},
			ColHeaders:  []string{"FY24"},
			CellAddress: "B5",
			Value:       "38%",
			DataType:    model.DataPercentage,
			FullContext: "Sheet: P&L | Table: Revenue Mix | Type: financial_ratios | Row: Export | Column: FY24 | Value: 38% | DataType: percentage",
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	flat := NewFlat(3)
	if err := flat.Add([]float32{1, 0, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := flat.Add([]float32{0, 1, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	store := &Store{Index: flat, Records: testRecords()}
	dir := t.TempDir()
	if err := store.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded.Records))
	}

	rec := loaded.Records[1]
	if rec.SheetName != "P&L" || rec.CellAddress != "B5" || rec.Value != "38%" {
		t.Errorf("Record fields lost in round-trip: %+v", rec)
	}
	if rec.DataType != model.DataPercentage || rec.TableType != model.TableFinancialRatios {
		t.Errorf("Typed fields lost in round-trip: %+v", rec)
	}
	if len(rec.RowHeaders) != 1 || rec.RowHeaders[0] != "Export" {
		t.Errorf("Headers lost in round-trip: %v", rec.RowHeaders)
	}

	// Position pairing: the second vector must lead back to the second record.
	hits, err := loaded.Index.Search([]float32{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].Position != 1 {
		t.Errorf("Expected position 1, got %d", hits[0].Position)
	}
	if loaded.Records[hits[0].Position].CellAddress != "B5" {
		t.Errorf("Pairing broken: got %s", loaded.Records[hits[0].Position].CellAddress)
	}
}

func TestLoadMissingStore(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrStoreMissing) {
		t.Errorf("Expected ErrStoreMissing, got %v", err)
	}
}

func TestLoadMissingIndexHalf(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ContextsFile), []byte("[]"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, ErrStoreMissing) {
		t.Errorf("Expected ErrStoreMissing for a half store, got %v", err)
	}
}

func TestLoadCountMismatch(t *testing.T) {
	flat := NewFlat(2)
	_ = flat.Add([]float32{1, 0})
	_ = flat.Add([]float32{0, 1})

	store := &Store{Index: flat, Records: testRecords()}
	dir := t.TempDir()
	if err := store.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Truncate the record list so the halves disagree.
	if err := os.WriteFile(filepath.Join(dir, ContextsFile), []byte(`[{"sheet_name":"P&L"}]`), 0644); err != nil {
		t.Fatalf("overwrite contexts: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected error for vector/record mismatch, got nil")
	}
	if errors.Is(err, ErrStoreMissing) {
		t.Error("Mismatch must not be reported as a missing store")
	}
}

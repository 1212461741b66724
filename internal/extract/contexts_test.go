package extract

import (
	"strings"
	"testing"

	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/workbook"
)

func builderSheet() *workbook.Sheet {
	return workbook.NewSheet("Q3", [][]string{
		{"", "", "", ""},
		{"Revenue Breakdown", "", "", ""},
		{"", "FY24", "FY25", "Growth"},
		{"Domestic", "2759", "3104", "12.5%"},
		{"Export", "1200", "1380", "15%"},
	})
}

// Region covering the header row plus the two data rows (1-based rows
// 3-5, cols 1-4), with the title sitting one row above.
func builderRegion() model.TableRegion {
	return model.TableRegion{
		MinRow: 3, MaxRow: 5,
		MinCol: 1, MaxCol: 4,
		Type: model.TableFinancialSummary,
	}
}

func TestBuildContexts(t *testing.T) {
	builder := NewContextBuilder(defaultDetection())
	contexts := builder.BuildContexts(builderSheet(), []model.TableRegion{builderRegion()})

	// 11 non-empty cells inside the bounds: 3 header cells + 2 data rows
	// of 4 cells each.
	if len(contexts) != 11 {
		t.Fatalf("expected 11 contexts, got %d", len(contexts))
	}

	byAddress := make(map[string]model.CellContext)
	for _, ctx := range contexts {
		if len(ctx.RowHeaders) == 0 || len(ctx.ColHeaders) == 0 {
			t.Fatalf("empty header list for %s", ctx.CellAddress)
		}
		if ctx.TableTitle != "Revenue Breakdown" {
			t.Errorf("cell %s: title %q, want %q", ctx.CellAddress, ctx.TableTitle, "Revenue Breakdown")
		}
		byAddress[ctx.CellAddress] = ctx
	}

	domestic, ok := byAddress["B4"]
	if !ok {
		t.Fatal("missing context for B4")
	}
	if domestic.Value != "2759" {
		t.Errorf("B4 value = %q, want 2759", domestic.Value)
	}
	if got := domestic.RowHeaders[0]; got != "Domestic" {
		t.Errorf("B4 row header = %q, want Domestic", got)
	}
	if got := domestic.ColHeaders[0]; got != "FY24" {
		t.Errorf("B4 column header = %q, want FY24", got)
	}
	if domestic.DataType != model.DataInteger {
		t.Errorf("B4 data type = %q, want integer", domestic.DataType)
	}

	want := "Sheet: Q3 | Table: Revenue Breakdown | Type: financial_summary | Row: Domestic | Column: FY24 | Value: 2759 | DataType: integer"
	if domestic.FullContext != want {
		t.Errorf("B4 context string:\n got %q\nwant %q", domestic.FullContext, want)
	}

	growth, ok := byAddress["D4"]
	if !ok {
		t.Fatal("missing context for D4")
	}
	if growth.DataType != model.DataPercentage {
		t.Errorf("D4 data type = %q, want percentage", growth.DataType)
	}
	if got := growth.ColHeaders[0]; got != "Growth" {
		t.Errorf("D4 column header = %q, want Growth", got)
	}
}

func TestHeaderSentinels(t *testing.T) {
	// Purely numeric table: no text qualifies as a header anywhere.
	sheet := workbook.NewSheet("Numbers", [][]string{
		{"10", "20", "30"},
		{"40", "50", "60"},
		{"70", "80", "90"},
	})
	region := model.TableRegion{MinRow: 1, MaxRow: 3, MinCol: 1, MaxCol: 3, Type: model.TableData}

	builder := NewContextBuilder(defaultDetection())
	contexts := builder.BuildContexts(sheet, []model.TableRegion{region})
	if len(contexts) != 9 {
		t.Fatalf("expected 9 contexts, got %d", len(contexts))
	}
	for _, ctx := range contexts {
		if len(ctx.RowHeaders) != 1 || ctx.RowHeaders[0] != model.UnknownRowHeader {
			t.Errorf("cell %s: row headers %v, want sentinel", ctx.CellAddress, ctx.RowHeaders)
		}
		if len(ctx.ColHeaders) != 1 || ctx.ColHeaders[0] != model.UnknownColHeader {
			t.Errorf("cell %s: column headers %v, want sentinel", ctx.CellAddress, ctx.ColHeaders)
		}
		if !strings.Contains(ctx.FullContext, model.UnknownRowHeader) {
			t.Errorf("cell %s: context string missing row sentinel: %q", ctx.CellAddress, ctx.FullContext)
		}
	}
}

func TestTableTitle(t *testing.T) {
	builder := NewContextBuilder(defaultDetection())

	tests := []struct {
		name   string
		rows   [][]string
		region model.TableRegion
		want   string
	}{
		{
			name: "title directly above",
			rows: [][]string{
				{"Margin Profile", ""},
				{"A", "B"},
			},
			region: model.TableRegion{MinRow: 2, MaxRow: 2, MinCol: 1, MaxCol: 2},
			want:   "Margin Profile",
		},
		{
			name: "numeric candidate skipped",
			rows: [][]string{
				{"2024", "Cost Summary"},
				{"A", "B"},
			},
			region: model.TableRegion{MinRow: 2, MaxRow: 2, MinCol: 1, MaxCol: 2},
			want:   "Cost Summary",
		},
		{
			name: "short candidate skipped",
			rows: [][]string{
				{"FY", ""},
				{"A", "B"},
			},
			region: model.TableRegion{MinRow: 2, MaxRow: 2, MinCol: 1, MaxCol: 2},
			want:   "Table_2_1",
		},
		{
			name: "nothing above",
			rows: [][]string{
				{"A", "B"},
			},
			region: model.TableRegion{MinRow: 1, MaxRow: 1, MinCol: 1, MaxCol: 2},
			want:   "Table_1_1",
		},
		{
			name: "second row above wins over empty first",
			rows: [][]string{
				{"Working Capital", ""},
				{"", ""},
				{"A", "B"},
			},
			region: model.TableRegion{MinRow: 3, MaxRow: 3, MinCol: 1, MaxCol: 2},
			want:   "Working Capital",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := workbook.NewSheet("S", tt.rows)
			region := tt.region
			if got := builder.tableTitle(sheet, &region); got != tt.want {
				t.Errorf("tableTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlapFirstRegionWins(t *testing.T) {
	sheet := workbook.NewSheet("S", [][]string{
		{"alpha", "beta", "gamma"},
		{"delta", "epsilon", "zeta"},
	})
	first := model.TableRegion{MinRow: 1, MaxRow: 2, MinCol: 1, MaxCol: 2, Type: model.TableData}
	second := model.TableRegion{MinRow: 1, MaxRow: 2, MinCol: 2, MaxCol: 3, Type: model.TablePercentage}

	builder := NewContextBuilder(defaultDetection())
	contexts := builder.BuildContexts(sheet, []model.TableRegion{first, second})

	// 6 distinct cells; the shared column B must appear exactly once,
	// attributed to the first region.
	if len(contexts) != 6 {
		t.Fatalf("expected 6 contexts, got %d", len(contexts))
	}
	seen := make(map[string]model.TableType)
	for _, ctx := range contexts {
		if prior, dup := seen[ctx.CellAddress]; dup {
			t.Fatalf("cell %s attributed twice (%q then %q)", ctx.CellAddress, prior, ctx.TableType)
		}
		seen[ctx.CellAddress] = ctx.TableType
	}
	if seen["B1"] != model.TableData {
		t.Errorf("shared cell B1 owned by %q, want first region's %q", seen["B1"], model.TableData)
	}
}

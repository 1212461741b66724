package model

import (
	"fmt"
	"strings"
)

// TableType classifies a detected table region by its content
type TableType string

const (
	TableFinancialRatios  TableType = "financial_ratios"  // Financial keywords plus heavy percentage share
	TableFinancialSummary TableType = "financial_summary" // Financial keywords without the percentage share
	TablePercentage       TableType = "percentage_table"  // Mostly percentage-like values, no keywords
	TableData             TableType = "data_table"        // Anything else that clustered
	TableMixed            TableType = "mixed"             // Monolithic fallback when clustering fails
)

// CellPoint is one non-empty cell lifted out of a sheet (1-based coordinates)
type CellPoint struct {
	Row   int
	Col   int
	Value string
}

// TableRegion is a rectangular group of cells detected as one table.
// Bounds are 1-based and inclusive; MinRow <= MaxRow and MinCol <= MaxCol
// always hold for a retained region.
type TableRegion struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
	Cells  []CellPoint
	Type   TableType
}

// Contains reports whether the 1-based coordinate falls inside the
// region's bounds
func (r *TableRegion) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// Sentinel headers used when no header text exists within the lookback
// window. Header lists are never empty.
const (
	UnknownRowHeader = "Unknown_Row"
	UnknownColHeader = "Unknown_Col"
)

// headerJoin separates stacked headers inside the canonical context string
const headerJoin = " > "

// CellContext is the canonical semantic record for one spreadsheet cell.
// Created once during extraction, immutable afterward, persisted to the
// context store.
type CellContext struct {
	SheetName   string    `json:"sheet_name"`
	TableTitle  string    `json:"table_title"`
	TableType   TableType `json:"table_type"`
	RowHeaders  []string  `json:"row_headers"`
	ColHeaders  []string  `json:"column_headers"`
	CellAddress string    `json:"cell_address"` // Letter-number form, e.g. "B4"
	Value       string    `json:"value"`
	DataType    DataType  `json:"data_type"`
	FullContext string    `json:"full_context"`
	Confidence  float64   `json:"confidence,omitempty"`
}

// Location returns the composite sheet-qualified address of the cell
func (c *CellContext) Location() string {
	return c.SheetName + "!" + c.CellAddress
}

// BuildContextString produces the deterministic canonical encoding that
// is embedded for semantic search. Header chains are joined innermost
// last.
func BuildContextString(sheet, title string, tableType TableType, rowHeaders, colHeaders []string, value string, dataType DataType) string {
	return fmt.Sprintf("Sheet: %s | Table: %s | Type: %s | Row: %s | Column: %s | Value: %s | DataType: %s",
		sheet, title, tableType,
		strings.Join(rowHeaders, headerJoin),
		strings.Join(colHeaders, headerJoin),
		value, dataType)
}

// Package workbook reads xlsx files for the reconciliation pipeline.
// It wraps the tabula xlsx reader with 1-based addressing (spreadsheet
// convention) and keeps every open short-lived: callers get fully
// materialized sheet data back, so parallel workers can each open their
// own read-only handle and close it immediately.
package workbook

import (
	"fmt"

	"github.com/tsawler/tabula/xlsx"

	"github.com/dkorolev/crossfoot/internal/model"
)

// Sheet is one worksheet with 1-based row/column addressing
type Sheet struct {
	Name string
	Rows int // Total rows, 1-based count
	Cols int // Total columns, 1-based count

	src *xlsx.Sheet
}

// SheetNames lists the worksheets in the workbook, in file order
func SheetNames(path string) ([]string, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer r.Close()
	return r.SheetNames(), nil
}

// OpenSheet loads one worksheet by name. The file handle is closed
// before returning; the sheet data is self-contained.
func OpenSheet(path, name string) (*Sheet, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer r.Close()

	src, err := r.SheetByName(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	return wrapSheet(src), nil
}

func wrapSheet(src *xlsx.Sheet) *Sheet {
	return &Sheet{
		Name: src.Name,
		Rows: src.MaxRow + 1,
		Cols: src.MaxCol + 1,
		src:  src,
	}
}

// NewSheet builds an in-memory sheet from a row-major grid of display
// values. Empty strings are empty cells.
func NewSheet(name string, rows [][]string) *Sheet {
	maxCol := 0
	grid := make([][]xlsx.Cell, len(rows))
	for r, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
		line := make([]xlsx.Cell, len(row))
		for c, value := range row {
			cell := xlsx.Cell{Row: r, Col: c, Value: value, Type: xlsx.CellTypeString}
			if value == "" {
				cell.Type = xlsx.CellTypeEmpty
			}
			line[c] = cell
		}
		grid[r] = line
	}
	src := &xlsx.Sheet{
		Name:   name,
		Rows:   grid,
		MaxRow: len(rows) - 1,
		MaxCol: maxCol - 1,
	}
	return wrapSheet(src)
}

// Value returns the display value at the 1-based coordinate, or "" for
// empty or out-of-range cells
func (s *Sheet) Value(row, col int) string {
	cell := s.src.Cell(row-1, col-1)
	if cell == nil {
		return ""
	}
	return cell.Value
}

// NonEmptyCells lifts every non-empty cell into a 1-based point list,
// scanned row-major
func (s *Sheet) NonEmptyCells() []model.CellPoint {
	var points []model.CellPoint
	for r := 1; r <= s.Rows; r++ {
		for c := 1; c <= s.Cols; c++ {
			cell := s.src.Cell(r-1, c-1)
			if cell == nil || cell.IsEmpty() {
				continue
			}
			points = append(points, model.CellPoint{Row: r, Col: c, Value: cell.Value})
		}
	}
	return points
}

// Address renders a 1-based coordinate in letter-number form
func Address(row, col int) string {
	return xlsx.CellRef(col-1, row-1)
}

// ParseAddress resolves a letter-number reference to 1-based coordinates
func ParseAddress(ref string) (row, col int, err error) {
	c, r, err := xlsx.ParseCellRef(ref)
	if err != nil {
		return 0, 0, fmt.Errorf("parse address %q: %w", ref, err)
	}
	return r + 1, c + 1, nil
}

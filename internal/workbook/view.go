package workbook

import "fmt"

// Read-only viewer payloads backing the inspect command. Each call opens
// its own handle; nothing is cached between calls.

// SheetMeta summarizes one worksheet's dimensions
type SheetMeta struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// WorkbookMeta lists every worksheet in a file
type WorkbookMeta struct {
	Path   string      `json:"path"`
	Sheets []SheetMeta `json:"sheets"`
}

// SheetPage is a clamped window of rendered rows
type SheetPage struct {
	Sheet      string     `json:"sheet"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	StartRow   int        `json:"start_row"` // 1-based first row in the window
	Rows       [][]string `json:"rows"`
}

// CellSpotlight is one addressed cell with its immediate neighborhood
type CellSpotlight struct {
	Sheet        string     `json:"sheet"`
	Address      string     `json:"address"`
	Row          int        `json:"row"`
	Col          int        `json:"col"`
	Value        string     `json:"value"`
	Neighborhood [][]string `json:"neighborhood"` // 3x3 window centered on the cell, clamped at edges
}

// Meta reports every sheet's name and dimensions
func Meta(path string) (*WorkbookMeta, error) {
	names, err := SheetNames(path)
	if err != nil {
		return nil, err
	}

	meta := &WorkbookMeta{Path: path}
	for _, name := range names {
		sheet, err := OpenSheet(path, name)
		if err != nil {
			return nil, err
		}
		meta.Sheets = append(meta.Sheets, SheetMeta{Name: sheet.Name, Rows: sheet.Rows, Cols: sheet.Cols})
	}
	return meta, nil
}

// Page returns the page-th window of pageRows rows from the named sheet.
// Page numbers are 1-based and clamped into the valid range.
func Page(path, sheetName string, page, pageRows int) (*SheetPage, error) {
	if pageRows < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageRows)
	}
	sheet, err := OpenSheet(path, sheetName)
	if err != nil {
		return nil, err
	}

	page, totalPages, startRow, endRow := pageWindow(sheet.Rows, pageRows, page)

	result := &SheetPage{
		Sheet:      sheet.Name,
		Page:       page,
		TotalPages: totalPages,
		StartRow:   startRow,
	}
	for r := startRow; r <= endRow; r++ {
		row := make([]string, sheet.Cols)
		for c := 1; c <= sheet.Cols; c++ {
			row[c-1] = sheet.Value(r, c)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// pageWindow clamps a 1-based page number into range and returns the
// inclusive row window it covers
func pageWindow(totalRows, pageRows, page int) (clamped, totalPages, startRow, endRow int) {
	totalPages = (totalRows + pageRows - 1) / pageRows
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	startRow = (page-1)*pageRows + 1
	endRow = startRow + pageRows - 1
	if endRow > totalRows {
		endRow = totalRows
	}
	return page, totalPages, startRow, endRow
}

// Spotlight resolves a letter-number reference and returns that cell
// with a 3x3 neighborhood, clamped at sheet edges
func Spotlight(path, sheetName, ref string) (*CellSpotlight, error) {
	row, col, err := ParseAddress(ref)
	if err != nil {
		return nil, err
	}
	sheet, err := OpenSheet(path, sheetName)
	if err != nil {
		return nil, err
	}
	if row > sheet.Rows || col > sheet.Cols {
		return nil, fmt.Errorf("cell %s outside sheet %q (%d rows, %d cols)", ref, sheetName, sheet.Rows, sheet.Cols)
	}

	spot := &CellSpotlight{
		Sheet:   sheet.Name,
		Address: Address(row, col),
		Row:     row,
		Col:     col,
		Value:   sheet.Value(row, col),
	}
	for r := row - 1; r <= row+1; r++ {
		if r < 1 || r > sheet.Rows {
			continue
		}
		var line []string
		for c := col - 1; c <= col+1; c++ {
			if c < 1 || c > sheet.Cols {
				continue
			}
			line = append(line, sheet.Value(r, c))
		}
		spot.Neighborhood = append(spot.Neighborhood, line)
	}
	return spot, nil
}

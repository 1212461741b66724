package extract

import (
	"fmt"
	"strings"

	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/workbook"
)

// ContextBuilder derives the hierarchical semantic record for every
// non-empty cell inside detected table regions
type ContextBuilder struct {
	cfg model.DetectionConfig
}

// NewContextBuilder creates a builder with the given lookback tuning
func NewContextBuilder(cfg model.DetectionConfig) *ContextBuilder {
	return &ContextBuilder{cfg: cfg}
}

// BuildContexts emits one CellContext per non-empty cell inside each
// region's bounds. When region bounds overlap, a cell belongs to the
// first region that claimed it and is skipped for later regions.
func (b *ContextBuilder) BuildContexts(sheet *workbook.Sheet, regions []model.TableRegion) []model.CellContext {
	claimed := make(map[[2]int]bool)
	var contexts []model.CellContext

	for i := range regions {
		region := &regions[i]
		title := b.tableTitle(sheet, region)

		for row := region.MinRow; row <= region.MaxRow; row++ {
			for col := region.MinCol; col <= region.MaxCol; col++ {
				value := sheet.Value(row, col)
				if value == "" {
					continue
				}
				key := [2]int{row, col}
				if claimed[key] {
					continue
				}
				claimed[key] = true

				rowHeaders := b.rowHeaders(sheet, region, row)
				colHeaders := b.colHeaders(sheet, region, col)
				dataType := ClassifyDataType(value)

				contexts = append(contexts, model.CellContext{
					SheetName:   sheet.Name,
					TableTitle:  title,
					TableType:   region.Type,
					RowHeaders:  rowHeaders,
					ColHeaders:  colHeaders,
					CellAddress: workbook.Address(row, col),
					Value:       value,
					DataType:    dataType,
					FullContext: model.BuildContextString(sheet.Name, title, region.Type, rowHeaders, colHeaders, value, dataType),
				})
			}
		}
	}

	return contexts
}

// tableTitle scans up to TitleLookback rows above the region, nearest row
// first, left-to-right within the region's columns. The first textual
// cell longer than MinTitleLength that is not purely numeric wins. With
// no candidate the title is synthesized from the top-left coordinate.
func (b *ContextBuilder) tableTitle(sheet *workbook.Sheet, region *model.TableRegion) string {
	for offset := 1; offset <= b.cfg.TitleLookback; offset++ {
		row := region.MinRow - offset
		if row < 1 {
			break
		}
		for col := region.MinCol; col <= region.MaxCol; col++ {
			title := strings.TrimSpace(sheet.Value(row, col))
			if len(title) > b.cfg.MinTitleLength && !isDigits(strings.ReplaceAll(title, ".", "")) {
				return title
			}
		}
	}
	return fmt.Sprintf("Table_%d_%d", region.MinRow, region.MinCol)
}

// rowHeaders finds the first non-numeric text cell among the leftmost
// HeaderLookback columns of the row. Header lists are never empty; the
// sentinel stands in when nothing qualifies.
func (b *ContextBuilder) rowHeaders(sheet *workbook.Sheet, region *model.TableRegion, row int) []string {
	span := region.MaxCol - region.MinCol + 1
	if span > b.cfg.HeaderLookback {
		span = b.cfg.HeaderLookback
	}
	for offset := 0; offset < span; offset++ {
		header := strings.TrimSpace(sheet.Value(row, region.MinCol+offset))
		if header != "" && !isNumericValue(header) {
			return []string{header}
		}
	}
	return []string{model.UnknownRowHeader}
}

// colHeaders mirrors rowHeaders over the topmost HeaderLookback rows of
// the column
func (b *ContextBuilder) colHeaders(sheet *workbook.Sheet, region *model.TableRegion, col int) []string {
	span := region.MaxRow - region.MinRow + 1
	if span > b.cfg.HeaderLookback {
		span = b.cfg.HeaderLookback
	}
	for offset := 0; offset < span; offset++ {
		header := strings.TrimSpace(sheet.Value(region.MinRow+offset, col))
		if header != "" && !isNumericValue(header) {
			return []string{header}
		}
	}
	return []string{model.UnknownColHeader}
}

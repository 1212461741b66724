package extract

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/workbook"
)

// Financial keywords that mark a region as financial when present in any
// member value
var financialKeywords = []string{"ratio", "growth", "mix", "profit", "revenue", "pbt"}

// Percentage-share thresholds for region classification
const (
	financialRatioShare  = 0.30 // Above this with keywords present: financial_ratios
	percentageTableShare = 0.50 // Above this without keywords: percentage_table
)

// TableDetector infers table regions from a sheet's non-empty cells
// using density-based spatial clustering
type TableDetector struct {
	cfg model.DetectionConfig
	log zerolog.Logger
}

// NewTableDetector creates a detector with the given tuning
func NewTableDetector(cfg model.DetectionConfig, log zerolog.Logger) *TableDetector {
	return &TableDetector{cfg: cfg, log: log}
}

// DetectTables groups the sheet's non-empty cells into table regions.
// Sheets with fewer non-empty cells than the retention minimum produce no
// regions. Clusters below the minimum are discarded as noise. When the
// clustering parameters are unusable the whole sheet degrades to one
// monolithic mixed-type region instead of failing.
func (d *TableDetector) DetectTables(sheet *workbook.Sheet) []model.TableRegion {
	points := sheet.NonEmptyCells()
	if len(points) < d.cfg.MinTableCells {
		return nil
	}

	if d.cfg.ClusterRadius <= 0 || d.cfg.MinNeighbors <= 0 {
		d.log.Warn().
			Str("sheet", sheet.Name).
			Float64("radius", d.cfg.ClusterRadius).
			Int("min_neighbors", d.cfg.MinNeighbors).
			Msg("unusable clustering parameters, falling back to monolithic region")
		return []model.TableRegion{monolithicRegion(points)}
	}

	clusters := dbscan(points, d.cfg.ClusterRadius, d.cfg.MinNeighbors)

	var regions []model.TableRegion
	for _, member := range clusters {
		if len(member) < d.cfg.MinTableCells {
			continue
		}
		cells := make([]model.CellPoint, len(member))
		for i, idx := range member {
			cells[i] = points[idx]
		}
		region := boundRegion(cells)
		region.Type = classifyRegion(cells)
		regions = append(regions, region)
	}

	d.log.Debug().
		Str("sheet", sheet.Name).
		Int("cells", len(points)).
		Int("tables", len(regions)).
		Msg("table detection complete")
	return regions
}

// boundRegion computes the inclusive bounding box over member cells
func boundRegion(cells []model.CellPoint) model.TableRegion {
	region := model.TableRegion{
		MinRow: cells[0].Row,
		MaxRow: cells[0].Row,
		MinCol: cells[0].Col,
		MaxCol: cells[0].Col,
		Cells:  cells,
	}
	for _, cell := range cells[1:] {
		if cell.Row < region.MinRow {
			region.MinRow = cell.Row
		}
		if cell.Row > region.MaxRow {
			region.MaxRow = cell.Row
		}
		if cell.Col < region.MinCol {
			region.MinCol = cell.Col
		}
		if cell.Col > region.MaxCol {
			region.MaxCol = cell.Col
		}
	}
	return region
}

// monolithicRegion spans all non-empty cells as a single mixed table
func monolithicRegion(points []model.CellPoint) model.TableRegion {
	region := boundRegion(points)
	region.Type = model.TableMixed
	return region
}

// classifyRegion labels a region from its member values: financial
// keywords first, then the share of percentage-like values
func classifyRegion(cells []model.CellPoint) model.TableType {
	var joined strings.Builder
	percentages := 0
	for _, cell := range cells {
		lower := strings.ToLower(cell.Value)
		joined.WriteString(lower)
		joined.WriteString(" ")
		if strings.Contains(lower, "%") {
			percentages++
		}
	}

	hasKeyword := false
	all := joined.String()
	for _, kw := range financialKeywords {
		if strings.Contains(all, kw) {
			hasKeyword = true
			break
		}
	}

	share := float64(percentages) / float64(len(cells))
	switch {
	case hasKeyword && share > financialRatioShare:
		return model.TableFinancialRatios
	case hasKeyword:
		return model.TableFinancialSummary
	case share > percentageTableShare:
		return model.TablePercentage
	default:
		return model.TableData
	}
}

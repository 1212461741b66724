package model

// Claim represents one numeric or textual assertion extracted from a
// presentation page, to be reconciled against spreadsheet data
type Claim struct {
	ID          string `json:"id"`                         // Stable identifier (e.g., "pdf_value_3")
	Value       string `json:"value"`                      // Raw displayed value (e.g., "₹2,759 Cr")
	Normalized  string `json:"normalized_value,omitempty"` // Cleaned numeric form (e.g., "2759")
	Description string `json:"description,omitempty"`      // Surrounding semantic context from the page
	Category    string `json:"category,omitempty"`         // Business category tag
	DataType    string `json:"data_type,omitempty"`        // Classified value kind
	Page        int    `json:"page,omitempty"`             // 1-based source page
	BBox        *BBox  `json:"bbox,omitempty"`             // Normalized location on the page
}

// Claim categories assigned by the upstream extractor
const (
	CategoryRevenue       = "revenue"
	CategoryProfitability = "profitability"
	CategoryGrowth        = "growth"
	CategoryMargin        = "margin"
	CategoryRatio         = "ratio"
	CategoryOther         = "other"
)

// BBox is a page-relative bounding box [x0, y0, x1, y1] with all
// coordinates in [0,1]
type BBox [4]float64

// DefaultBBox is substituted when the extractor supplies no usable box
func DefaultBBox() BBox {
	return BBox{0.1, 0.1, 0.2, 0.2}
}

// minBBoxSide is the smallest width/height a box may have after clamping
const minBBoxSide = 0.01

// Clamp forces the box into [0,1] on both axes, reorders inverted
// corners, and enforces a minimum side length. A degenerate box becomes
// the default box.
func (b BBox) Clamp() BBox {
	for i := range b {
		if b[i] < 0 {
			b[i] = 0
		}
		if b[i] > 1 {
			b[i] = 1
		}
	}
	if b[0] > b[2] {
		b[0], b[2] = b[2], b[0]
	}
	if b[1] > b[3] {
		b[1], b[3] = b[3], b[1]
	}
	if b[2]-b[0] < minBBoxSide {
		b[2] = b[0] + minBBoxSide
		if b[2] > 1 {
			b[0], b[2] = 1-minBBoxSide, 1
		}
	}
	if b[3]-b[1] < minBBoxSide {
		b[3] = b[1] + minBBoxSide
		if b[3] > 1 {
			b[1], b[3] = 1-minBBoxSide, 1
		}
	}
	return b
}

// Center returns the midpoint of the box
func (b BBox) Center() (x, y float64) {
	return (b[0] + b[2]) / 2, (b[1] + b[3]) / 2
}

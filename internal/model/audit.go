package model

import "time"

// AuditStatus is the terminal validation outcome for one claim.
// Exactly three values exist; anything else coming back from a provider
// is a normalization defect, not a new status.
type AuditStatus string

const (
	StatusMatched      AuditStatus = "matched"
	StatusMismatched   AuditStatus = "mismatched"
	StatusUnverifiable AuditStatus = "unverifiable"
)

// ValidStatus reports whether s is one of the three permitted statuses
func ValidStatus(s AuditStatus) bool {
	return s == StatusMatched || s == StatusMismatched || s == StatusUnverifiable
}

// SourceMatch pins the spreadsheet evidence an adjudicated claim was
// checked against
type SourceMatch struct {
	SourceCell       string  `json:"source_cell,omitempty"` // Sheet-qualified address
	Value            string  `json:"excel_value,omitempty"`
	MatchConfidence  float64 `json:"match_confidence,omitempty"`
	CalculationBasis string  `json:"calculation_basis,omitempty"` // e.g. "direct", "derived: sum of B2:B5"
}

// AuditResult is the terminal, immutable outcome of adjudicating one
// claim. Field tags mirror the reasoning provider's response contract so
// batch replies decode directly.
type AuditResult struct {
	ClaimID      string       `json:"pdf_value_id"`
	ClaimValue   string       `json:"pdf_value,omitempty"`
	ClaimContext string       `json:"pdf_context,omitempty"`
	Status       AuditStatus  `json:"validation_status"`
	Match        *SourceMatch `json:"excel_match,omitempty"`
	Confidence   float64      `json:"confidence"`
	Rationale    string       `json:"audit_reasoning,omitempty"`
	Error        string       `json:"error,omitempty"`
	Batch        int          `json:"batch_number,omitempty"`
	AuditedAt    time.Time    `json:"audit_timestamp,omitempty"`
}

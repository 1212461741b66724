package model

import "time"

// AuditReport is the complete outcome of one reconciliation run
type AuditReport struct {
	RunID       string    `json:"run_id"`
	PDFSource   string    `json:"pdf_source,omitempty"`
	ExcelSource string    `json:"excel_source"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	Results []AuditResult `json:"results"`

	Summary         AuditSummary `json:"summary"`
	Recommendations []string     `json:"recommendations,omitempty"`
	Risk            RiskLevel    `json:"risk_level"`
}

// AuditSummary aggregates result counts and quality ratios for a run
type AuditSummary struct {
	TotalClaims     int     `json:"total_claims"`
	Matched         int     `json:"matched"`
	Mismatched      int     `json:"mismatched"`
	Unverifiable    int     `json:"unverifiable"`
	Errors          int     `json:"errors"` // Results carrying an error marker
	OverallAccuracy float64 `json:"overall_accuracy"`
	SuccessRate     float64 `json:"success_rate"`
}

// RiskLevel grades how much manual review a run warrants
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"    // Accuracy >= 85
	RiskMedium RiskLevel = "medium" // Accuracy >= 70
	RiskHigh   RiskLevel = "high"
)

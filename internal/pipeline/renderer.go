package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkorolev/crossfoot/internal/model"
)

// Renderer writes audit reports as JSON and Markdown artifacts
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WriteReport renders report.json and report.md into dir
func (r *Renderer) WriteReport(report *model.AuditReport, dir string) (jsonPath, mdPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	jsonPath = filepath.Join(dir, "report.json")
	if err := r.RenderJSON(report, jsonPath); err != nil {
		return "", "", err
	}

	mdPath = filepath.Join(dir, "report.md")
	if err := r.RenderMarkdown(report, mdPath); err != nil {
		return "", "", err
	}

	return jsonPath, mdPath, nil
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.AuditReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the human-readable report
func (r *Renderer) RenderMarkdown(report *model.AuditReport, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// Markdown renders the report body
func (r *Renderer) Markdown(report *model.AuditReport) string {
	var b strings.Builder

	b.WriteString("# Crossfoot Audit Report\n\n")
	fmt.Fprintf(&b, "- **Run:** %s\n", report.RunID)
	fmt.Fprintf(&b, "- **Claims source:** %s\n", report.PDFSource)
	fmt.Fprintf(&b, "- **Spreadsheet source:** %s\n", report.ExcelSource)
	if report.Provider != "" {
		fmt.Fprintf(&b, "- **Provider:** %s (%s)\n", report.Provider, report.Model)
	}
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total claims | %d |\n", s.TotalClaims)
	fmt.Fprintf(&b, "| Matched | %d |\n", s.Matched)
	fmt.Fprintf(&b, "| Mismatched | %d |\n", s.Mismatched)
	fmt.Fprintf(&b, "| Unverifiable | %d |\n", s.Unverifiable)
	fmt.Fprintf(&b, "| Errors | %d |\n", s.Errors)
	fmt.Fprintf(&b, "| Overall accuracy | %.1f%% |\n", s.OverallAccuracy)
	fmt.Fprintf(&b, "| Success rate | %.1f%% |\n", s.SuccessRate)
	fmt.Fprintf(&b, "| Risk level | %s |\n\n", report.Risk)

	if len(report.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Results\n\n")
	b.WriteString("| Claim | Value | Status | Confidence | Source | Reasoning |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, res := range report.Results {
		source := ""
		if res.Match != nil {
			source = res.Match.SourceCell
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %s | %s |\n",
			mdEscape(res.ClaimID),
			mdEscape(res.ClaimValue),
			res.Status,
			res.Confidence,
			mdEscape(source),
			mdEscape(res.Rationale))
	}

	return b.String()
}

// WriteSummary prints the run outcome for the terminal
func (r *Renderer) WriteSummary(w io.Writer, report *model.AuditReport) {
	s := report.Summary
	fmt.Fprintf(w, "\nAudit complete: %d claims\n", s.TotalClaims)
	fmt.Fprintf(w, "  matched:      %d\n", s.Matched)
	fmt.Fprintf(w, "  mismatched:   %d\n", s.Mismatched)
	fmt.Fprintf(w, "  unverifiable: %d\n", s.Unverifiable)
	if s.Errors > 0 {
		fmt.Fprintf(w, "  errors:       %d\n", s.Errors)
	}
	fmt.Fprintf(w, "  accuracy:     %.1f%%  (risk: %s)\n", s.OverallAccuracy, report.Risk)
}

// mdEscape keeps cell text from breaking the results table
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

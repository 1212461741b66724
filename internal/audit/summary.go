package audit

import "github.com/dkorolev/crossfoot/internal/model"

// Thresholds for run-quality grading
const (
	accuracyGood    = 90.0 // Below this: recommend reviewing mismatches
	accuracyPoor    = 75.0 // Below this: recommend checking source coverage
	riskLowFloor    = 85.0
	riskMediumFloor = 70.0
)

// Summarize aggregates terminal results into run-level counts and
// ratios. Accuracy is matched over valid results (those without an error
// marker); success rate is valid over total.
func Summarize(results []model.AuditResult) model.AuditSummary {
	s := model.AuditSummary{TotalClaims: len(results)}

	for _, res := range results {
		if res.Error != "" {
			s.Errors++
		}
		switch res.Status {
		case model.StatusMatched:
			s.Matched++
		case model.StatusMismatched:
			s.Mismatched++
		case model.StatusUnverifiable:
			s.Unverifiable++
		}
	}

	valid := s.TotalClaims - s.Errors
	if valid > 0 {
		s.OverallAccuracy = float64(s.Matched) / float64(valid) * 100
	}
	if s.TotalClaims > 0 {
		s.SuccessRate = float64(valid) / float64(s.TotalClaims) * 100
	}
	return s
}

// Recommendations derives review guidance from a run summary
func Recommendations(s model.AuditSummary) []string {
	var recs []string

	if s.TotalClaims == 0 {
		return []string{"No claims were audited; verify the extraction input."}
	}
	if s.Mismatched > 0 {
		recs = append(recs, "Review mismatched values against their source cells before publishing.")
	}
	if s.OverallAccuracy < accuracyPoor {
		recs = append(recs, "Accuracy is low; verify the spreadsheet covers the presentation's source data.")
	} else if s.OverallAccuracy < accuracyGood {
		recs = append(recs, "Spot-check a sample of matched values to confirm audit quality.")
	}
	if s.Unverifiable > s.TotalClaims/4 {
		recs = append(recs, "Many values were unverifiable; the presentation may cite data outside this workbook.")
	}
	if s.Errors > 0 {
		recs = append(recs, "Some batches hit processing errors; re-running the audit may improve coverage.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Audit quality is high; no follow-up required.")
	}
	return recs
}

// Risk grades how much manual review a run warrants from its accuracy
func Risk(s model.AuditSummary) model.RiskLevel {
	switch {
	case s.OverallAccuracy >= riskLowFloor:
		return model.RiskLow
	case s.OverallAccuracy >= riskMediumFloor:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

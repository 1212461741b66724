package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dkorolev/crossfoot/internal/match"
	"github.com/dkorolev/crossfoot/internal/model"
)

// promptClaim is the cleaned claim payload sent to the reasoning
// provider. Candidates split into value matches and semantic matches so
// the provider sees which signal produced them.
type promptClaim struct {
	ID              string            `json:"id"`
	Value           string            `json:"value"`
	Normalized      string            `json:"normalized_value,omitempty"`
	DataType        string            `json:"data_type,omitempty"`
	Context         string            `json:"business_context,omitempty"`
	ValueMatches    []promptCandidate `json:"value_matches,omitempty"`
	SemanticMatches []promptCandidate `json:"semantic_matches,omitempty"`
}

type promptCandidate struct {
	Cell       string  `json:"cell_reference"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Tier       string  `json:"match_type"`
	Context    string  `json:"context,omitempty"`
}

// promptRecord is one sampled spreadsheet value the provider may search
// beyond the per-claim candidates
type promptRecord struct {
	Cell    string `json:"cell_reference"`
	Sheet   string `json:"sheet_name"`
	Value   string `json:"value"`
	Context string `json:"business_context,omitempty"`
}

// buildPrompt constructs the single reasoning request for one batch:
// every claim with its candidates, a relevance-ranked sample of stored
// values, the response schema, and the exact-count-in-order contract.
func buildPrompt(batch []match.ClaimCandidates, records []model.CellContext, num, total, maxSample int) string {
	claims := make([]promptClaim, 0, len(batch))
	for _, set := range batch {
		pc := promptClaim{
			ID:         set.Claim.ID,
			Value:      set.Claim.Value,
			Normalized: set.Claim.Normalized,
			DataType:   set.Claim.DataType,
			Context:    set.Claim.Description,
		}
		for _, cand := range set.Candidates {
			entry := promptCandidate{
				Cell:       cand.Location,
				Value:      cand.Value,
				Confidence: cand.Confidence,
				Tier:       string(cand.Tier),
				Context:    cand.Context,
			}
			if cand.Tier == model.TierVector {
				pc.SemanticMatches = append(pc.SemanticMatches, entry)
			} else {
				pc.ValueMatches = append(pc.ValueMatches, entry)
			}
		}
		claims = append(claims, pc)
	}

	sample := relevantSample(batch, records, maxSample)

	claimsJSON, _ := json.MarshalIndent(claims, "", " ")
	sampleJSON, _ := json.MarshalIndent(sample, "", " ")

	var b strings.Builder
	b.WriteString("You are auditing presentation values against Excel source data.\n\n")
	fmt.Fprintf(&b, "BATCH %d/%d - PDF VALUES TO VALIDATE:\n%s\n\n", num, total, claimsJSON)
	fmt.Fprintf(&b, "RELEVANT EXCEL VALUES TO SEARCH AGAINST (showing %d of %d total):\n%s\n\n", len(sample), len(records), sampleJSON)
	b.WriteString(`For EACH PDF value (process them in order):
1. FIRST check the attached value_matches and semantic_matches candidates
2. If no direct match, check if it is a derived metric (growth rate, percentage, ratio) computable from the Excel values
3. For derived metrics, attempt the calculation using relevant Excel data and show it in audit_reasoning
4. Assign the appropriate validation status

Return ONLY valid JSON:
{
    "batch_results": [
        {
            "pdf_value_id": "pdf_value_1",
            "pdf_value": "2759",
            "pdf_context": "FY25 revenue",
            "validation_status": "matched|mismatched|unverifiable",
            "excel_match": {
                "source_cell": "Sheet1!B5",
                "excel_value": "2759",
                "match_confidence": 0.95,
                "calculation_basis": "direct_match|calculated|inferred"
            },
            "confidence": 0.95,
            "audit_reasoning": "Explanation including calculation steps if applicable"
        }
    ]
}

Validation status guide (only these 3 statuses are allowed):
- matched: exact or equivalent value found; calculated values are also matched
- mismatched: different value in a related context
- unverifiable: relationship cannot be verified, or the value exists only in the PDF

IMPORTANT RULES:
`)
	fmt.Fprintf(&b, "1. Return EXACTLY %d results, one for each PDF value IN ORDER\n", len(batch))
	b.WriteString("2. For calculated values, set validation_status to matched and show the calculation in audit_reasoning\n")
	b.WriteString("3. Return ONLY valid JSON, no other text\n")
	return b.String()
}

// relevantSample ranks stored records by keyword overlap with the batch
// and keeps at most maxSample. Ranking is stable, so equally scored
// records keep store order and the prompt stays deterministic.
func relevantSample(batch []match.ClaimCandidates, records []model.CellContext, maxSample int) []promptRecord {
	if maxSample <= 0 || len(records) == 0 {
		return nil
	}

	keywords := make(map[string]bool)
	for _, set := range batch {
		for _, word := range strings.Fields(strings.ToLower(set.Claim.Description + " " + set.Claim.Value)) {
			keywords[word] = true
		}
	}

	type scored struct {
		score int
		pos   int
	}
	ranked := make([]scored, len(records))
	for i := range records {
		haystack := strings.ToLower(records[i].FullContext)
		hits := 0
		for word := range keywords {
			if strings.Contains(haystack, word) {
				hits++
			}
		}
		ranked[i] = scored{score: hits, pos: i}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if maxSample > len(ranked) {
		maxSample = len(ranked)
	}

	sample := make([]promptRecord, 0, maxSample)
	for _, entry := range ranked[:maxSample] {
		rec := &records[entry.pos]
		sample = append(sample, promptRecord{
			Cell:    rec.Location(),
			Sheet:   rec.SheetName,
			Value:   rec.Value,
			Context: rec.FullContext,
		})
	}
	return sample
}

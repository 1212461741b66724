package model

// MatchTier identifies which signal produced a candidate, ordered by
// decreasing certainty
type MatchTier string

const (
	TierExact   MatchTier = "exact"   // Normalized string equality
	TierNumeric MatchTier = "numeric" // Relative difference within tolerance
	TierFuzzy   MatchTier = "fuzzy"   // Lexical similarity ratio
	TierVector  MatchTier = "vector"  // Nearest-neighbor over context embeddings
	TierContext MatchTier = "context" // Discounted fallback on description similarity
)

// Candidate is a proposed spreadsheet source for a claim. Transient:
// recomputed per claim, never persisted.
type Candidate struct {
	Location   string    `json:"location"` // Sheet-qualified cell address
	Value      string    `json:"value"`    // Stored value at that location
	Confidence float64   `json:"confidence"`
	Tier       MatchTier `json:"tier"`
	Context    string    `json:"context,omitempty"` // Supporting context excerpt
}

package match

import (
	"context"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/index"
	"github.com/dkorolev/crossfoot/internal/llm"
	"github.com/dkorolev/crossfoot/internal/model"
)

// Matcher ranks stored cell contexts as candidate sources for claims.
// The lexical library scores 0-100; thresholds in config live in [0,1],
// so scores divide by 100 at the comparison site.
type Matcher struct {
	store    *index.Store
	provider llm.Provider
	cfg      model.MatchingConfig
	log      zerolog.Logger
}

// NewMatcher creates a matcher over a loaded store. A nil provider
// disables the vector tier; the value tiers still run.
func NewMatcher(store *index.Store, provider llm.Provider, cfg model.MatchingConfig, log zerolog.Logger) *Matcher {
	return &Matcher{
		store:    store,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// ClaimCandidates binds a claim to its retrieved candidates
type ClaimCandidates struct {
	Claim      model.Claim
	Candidates []model.Candidate
}

// Retrieve computes candidates for every claim, preserving claim order
func (m *Matcher) Retrieve(ctx context.Context, claims []model.Claim) []ClaimCandidates {
	out := make([]ClaimCandidates, 0, len(claims))
	for _, claim := range claims {
		out = append(out, ClaimCandidates{
			Claim:      claim,
			Candidates: m.Candidates(ctx, claim),
		})
	}
	return out
}

// Candidates ranks source candidates for one claim: the value tiers and
// the vector tier run independently and merge; the discounted context
// fallback fires only when no value tier produced anything. The merged
// list is sorted by confidence and capped.
func (m *Matcher) Candidates(ctx context.Context, claim model.Claim) []model.Candidate {
	direct := m.valueTiers(claim)

	merged := append(direct, m.vectorTier(ctx, claim)...)

	if len(direct) == 0 && strings.TrimSpace(claim.Description) != "" {
		merged = append(merged, m.contextTier(claim)...)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Confidence > merged[b].Confidence
	})

	if len(merged) > m.cfg.TopCandidates {
		merged = merged[:m.cfg.TopCandidates]
	}
	return merged
}

// valueTiers walks every stored record once; a record contributes its
// strongest value signal only (exact beats numeric beats fuzzy).
func (m *Matcher) valueTiers(claim model.Claim) []model.Candidate {
	if claim.Value == "" {
		return nil
	}

	normClaim := normalizeValue(claim.Value)
	claimNum, claimIsNum := parseNumeric(claim.Value)
	lowerClaim := strings.ToLower(claim.Value)

	var out []model.Candidate
	for i := range m.store.Records {
		rec := &m.store.Records[i]
		if rec.Value == "" {
			continue
		}

		if normalizeValue(rec.Value) == normClaim {
			out = append(out, newCandidate(rec, 1.0, model.TierExact))
			continue
		}

		if claimIsNum {
			if recNum, ok := parseNumeric(rec.Value); ok && numericMatch(claimNum, recNum, m.cfg.NumericTolerance) {
				out = append(out, newCandidate(rec, 0.95, model.TierNumeric))
				continue
			}
		}

		ratio := float64(fuzzy.Ratio(lowerClaim, strings.ToLower(rec.Value))) / 100.0
		if ratio >= m.cfg.FuzzyThreshold {
			out = append(out, newCandidate(rec, ratio, model.TierFuzzy))
		}
	}
	return out
}

// vectorTier embeds the claim's value, description and category and
// queries the nearest-neighbor index. Embedding or search failure skips
// the tier; the value tiers still stand.
func (m *Matcher) vectorTier(ctx context.Context, claim model.Claim) []model.Candidate {
	if m.provider == nil || m.store.Index == nil || m.store.Index.Len() == 0 {
		return nil
	}

	query := strings.TrimSpace(strings.Join([]string{claim.Value, claim.Description, claim.Category}, " "))
	if query == "" {
		return nil
	}

	vec, err := m.provider.Embed(ctx, query)
	if err != nil {
		m.log.Warn().Err(err).Str("claim", claim.ID).Msg("query embedding failed, skipping vector tier")
		return nil
	}

	hits, err := m.store.Index.Search(vec, m.cfg.TopCandidates)
	if err != nil {
		m.log.Warn().Err(err).Str("claim", claim.ID).Msg("vector search failed")
		return nil
	}

	var out []model.Candidate
	for _, hit := range hits {
		if hit.Score <= 0 {
			continue
		}
		out = append(out, newCandidate(&m.store.Records[hit.Position], float64(hit.Score), model.TierVector))
	}
	return out
}

// contextTier is the discounted fallback: partial-ratio similarity
// between the claim's description and each record's context plus title.
func (m *Matcher) contextTier(claim model.Claim) []model.Candidate {
	desc := strings.ToLower(claim.Description)

	var out []model.Candidate
	for i := range m.store.Records {
		rec := &m.store.Records[i]
		haystack := strings.ToLower(rec.FullContext + " " + rec.TableTitle)

		similarity := float64(fuzzy.PartialRatio(desc, haystack)) / 100.0
		if similarity >= m.cfg.ContextThreshold {
			out = append(out, newCandidate(rec, similarity*m.cfg.ContextDiscount, model.TierContext))
		}
	}
	return out
}

func newCandidate(rec *model.CellContext, confidence float64, tier model.MatchTier) model.Candidate {
	return model.Candidate{
		Location:   rec.Location(),
		Value:      rec.Value,
		Confidence: confidence,
		Tier:       tier,
		Context:    rec.FullContext,
	}
}

// Stats summarizes retrieval coverage across a claim set
type Stats struct {
	TotalClaims       int     `json:"total_claims"`
	ClaimsWithMatches int     `json:"claims_with_matches"`
	TotalCandidates   int     `json:"total_candidates"`
	MatchRate         float64 `json:"match_rate"`
}

// Summarize computes coverage statistics for retrieved candidate sets
func Summarize(sets []ClaimCandidates) Stats {
	stats := Stats{TotalClaims: len(sets)}
	for _, set := range sets {
		if len(set.Candidates) > 0 {
			stats.ClaimsWithMatches++
		}
		stats.TotalCandidates += len(set.Candidates)
	}
	if stats.TotalClaims > 0 {
		stats.MatchRate = float64(stats.ClaimsWithMatches) / float64(stats.TotalClaims)
	}
	return stats
}

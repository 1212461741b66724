// Package audit adjudicates claims against spreadsheet evidence. The
// final matched/mismatched/unverifiable decision is delegated to the
// reasoning provider one batch at a time; this package owns the batch
// contract: exactly one result per claim, in claim order, no matter what
// the provider actually sends back.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/llm"
	"github.com/dkorolev/crossfoot/internal/match"
	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/repair"
	"github.com/dkorolev/crossfoot/internal/worker"
)

// Adjudicator processes claim batches strictly sequentially: one
// in-flight reasoning call, a pacing delay between batches, no automatic
// retry. A failed batch degrades to synthesized unverifiable results and
// the run continues.
type Adjudicator struct {
	provider llm.Provider
	cfg      model.AuditConfig
	pacer    *worker.Pacer
	log      zerolog.Logger
	now      func() time.Time
}

// NewAdjudicator creates an adjudicator over the given provider
func NewAdjudicator(provider llm.Provider, cfg model.AuditConfig, log zerolog.Logger) *Adjudicator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 8
	}
	return &Adjudicator{
		provider: provider,
		cfg:      cfg,
		pacer:    worker.NewPacer(cfg.BatchDelay),
		log:      log,
		now:      time.Now,
	}
}

// batchReply is the JSON object the reasoning provider is instructed to
// return for one batch
type batchReply struct {
	Results []model.AuditResult `json:"batch_results"`
}

// Adjudicate decides every claim in order. Records supply the evidence
// sample included in each prompt. The only error returned is context
// cancellation; every other failure is absorbed into per-claim results.
func (a *Adjudicator) Adjudicate(ctx context.Context, sets []match.ClaimCandidates, records []model.CellContext) ([]model.AuditResult, error) {
	results := make([]model.AuditResult, 0, len(sets))
	totalBatches := (len(sets) + a.cfg.BatchSize - 1) / a.cfg.BatchSize

	for start, num := 0, 1; start < len(sets); start, num = start+a.cfg.BatchSize, num+1 {
		end := start + a.cfg.BatchSize
		if end > len(sets) {
			end = len(sets)
		}
		batch := sets[start:end]

		if err := a.pacer.Wait(ctx); err != nil {
			return results, err
		}

		a.log.Info().
			Int("batch", num).
			Int("total", totalBatches).
			Int("claims", len(batch)).
			Msg("adjudicating batch")

		results = append(results, a.adjudicateBatch(ctx, batch, records, num, totalBatches)...)
	}

	return results, nil
}

// adjudicateBatch issues one reasoning call and reconciles the reply
// against the batch contract. Always returns len(batch) results in
// input order.
func (a *Adjudicator) adjudicateBatch(ctx context.Context, batch []match.ClaimCandidates, records []model.CellContext, num, total int) []model.AuditResult {
	prompt := buildPrompt(batch, records, num, total, a.cfg.MaxSample)

	reply, err := a.provider.Complete(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Int("batch", num).Msg("reasoning request failed, synthesizing batch results")
		out := make([]model.AuditResult, len(batch))
		for i, set := range batch {
			out[i] = a.fallbackResult(set.Claim, num, "reasoning request failed: "+err.Error())
		}
		return out
	}

	normalized := repair.Normalize(repair.KindAudit, reply)
	if normalized.Failed() {
		a.log.Warn().Str("detail", normalized.Err).Int("batch", num).Msg("reasoning reply unparseable")
	}

	var decoded batchReply
	if err := normalized.Decode(&decoded); err != nil {
		a.log.Warn().Err(err).Int("batch", num).Msg("batch_results did not decode")
		decoded.Results = nil
	}

	if len(decoded.Results) > len(batch) {
		a.log.Warn().
			Int("batch", num).
			Int("got", len(decoded.Results)).
			Int("want", len(batch)).
			Msg("provider returned extra results, truncating")
		decoded.Results = decoded.Results[:len(batch)]
	}

	out := make([]model.AuditResult, len(batch))
	for i, set := range batch {
		if i < len(decoded.Results) {
			out[i] = a.reconcile(decoded.Results[i], set.Claim, num)
		} else {
			out[i] = a.fallbackResult(set.Claim, num, "reasoning reply contained fewer results than claims")
		}
	}
	return out
}

// reconcile pins a provider result to its claim and enforces the status
// and confidence contracts. Identity fields always come from the claim;
// the provider cannot reassign a result to a different claim.
func (a *Adjudicator) reconcile(res model.AuditResult, claim model.Claim, num int) model.AuditResult {
	res.ClaimID = claim.ID
	res.ClaimValue = claim.Value
	if res.ClaimContext == "" {
		res.ClaimContext = claim.Description
	}

	if !model.ValidStatus(res.Status) {
		a.log.Warn().
			Str("claim", claim.ID).
			Str("status", string(res.Status)).
			Msg("provider returned unknown status")
		res.Error = "provider returned unknown status " + string(res.Status)
		res.Status = model.StatusUnverifiable
		res.Confidence = 0
	}

	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 1 {
		res.Confidence = 1
	}

	res.Batch = num
	res.AuditedAt = a.now().UTC()
	return res
}

// fallbackResult synthesizes the unverifiable outcome for a claim the
// provider did not answer
func (a *Adjudicator) fallbackResult(claim model.Claim, num int, detail string) model.AuditResult {
	return model.AuditResult{
		ClaimID:      claim.ID,
		ClaimValue:   claim.Value,
		ClaimContext: claim.Description,
		Status:       model.StatusUnverifiable,
		Confidence:   0,
		Rationale:    "Processing error: " + detail,
		Error:        detail,
		Batch:        num,
		AuditedAt:    a.now().UTC(),
	}
}

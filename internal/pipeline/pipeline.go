// Package pipeline orchestrates the two phases of a reconciliation run:
// indexing a workbook into a persisted semantic store, and auditing
// extracted claims against that store.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/audit"
	"github.com/dkorolev/crossfoot/internal/cache"
	"github.com/dkorolev/crossfoot/internal/extract"
	"github.com/dkorolev/crossfoot/internal/index"
	"github.com/dkorolev/crossfoot/internal/llm"
	"github.com/dkorolev/crossfoot/internal/match"
	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/worker"
)

// Pipeline wires the extraction, indexing, matching and adjudication
// stages over one configuration and provider.
type Pipeline struct {
	cfg      *model.Config
	provider llm.Provider
	renderer *Renderer
	log      zerolog.Logger
}

// New creates a pipeline. The provider serves both embedding and
// reasoning calls.
func New(cfg *model.Config, provider llm.Provider, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		provider: provider,
		renderer: NewRenderer(),
		log:      log,
	}
}

// IndexStats summarizes the indexing phase
type IndexStats struct {
	Sheets       int           `json:"sheets"`
	FailedSheets int           `json:"failed_sheets"`
	Tables       int           `json:"tables"`
	Contexts     int           `json:"contexts"`
	StoreDir     string        `json:"store_dir"`
	Duration     time.Duration `json:"duration"`
}

// Index extracts table contexts from every worksheet, embeds them and
// persists the searchable store. Sheets that fail to extract are logged
// and skipped; the run indexes whatever the remaining sheets produced.
func (p *Pipeline) Index(ctx context.Context, workbookPath string) (*IndexStats, error) {
	start := time.Now()

	extractor := worker.NewExtractor(p.cfg.Detection, p.cfg.Concurrency.Workers, p.log)
	results, err := extractor.ExtractWorkbook(ctx, workbookPath)
	if err != nil {
		return nil, fmt.Errorf("extract workbook: %w", err)
	}

	stats := &IndexStats{Sheets: len(results), StoreDir: p.cfg.Store.Dir}
	var contexts []model.CellContext
	for _, sheet := range results {
		if sheet.Err != nil {
			stats.FailedSheets++
			continue
		}
		contexts = append(contexts, sheet.Contexts...)
		stats.Tables += sheet.Tables
	}
	stats.Contexts = len(contexts)

	if len(contexts) == 0 {
		p.log.Warn().Str("workbook", workbookPath).Msg("no table contexts detected, indexing an empty store")
	}

	var embCache *cache.Embeddings
	if p.cfg.Cache.Enabled {
		embCache = cache.NewEmbeddings(p.cfg.Cache.Dir, p.cfg.Cache.TTL)
	}

	indexer := index.NewIndexer(p.provider, embCache, p.cfg, p.log)
	store, err := indexer.Build(ctx, contexts)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := store.Save(p.cfg.Store.Dir); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}

	stats.Duration = time.Since(start)
	p.log.Info().
		Int("sheets", stats.Sheets).
		Int("tables", stats.Tables).
		Int("contexts", stats.Contexts).
		Str("store", stats.StoreDir).
		Dur("took", stats.Duration).
		Msg("indexing complete")
	return stats, nil
}

// Audit reloads the persisted store, retrieves candidates for every
// claim in the extraction file and adjudicates them. A missing store is
// fatal; everything past that degrades per claim or per batch.
func (p *Pipeline) Audit(ctx context.Context, claimsPath, workbookLabel string) (*model.AuditReport, error) {
	store, err := index.Load(p.cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	claims, err := extract.LoadClaims(claimsPath)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	p.log.Info().Int("claims", len(claims)).Int("contexts", len(store.Records)).Msg("starting audit")

	matcher := match.NewMatcher(store, p.provider, p.cfg.Matching, p.log)
	sets := matcher.Retrieve(ctx, claims)

	coverage := match.Summarize(sets)
	p.log.Info().
		Int("with_candidates", coverage.ClaimsWithMatches).
		Int("candidates", coverage.TotalCandidates).
		Float64("match_rate", coverage.MatchRate).
		Msg("candidate retrieval complete")

	adjudicator := audit.NewAdjudicator(p.provider, p.cfg.Audit, p.log)
	results, err := adjudicator.Adjudicate(ctx, sets, store.Records)
	if err != nil {
		return nil, fmt.Errorf("adjudicate: %w", err)
	}

	summary := audit.Summarize(results)

	excelSource := workbookLabel
	if excelSource == "" {
		excelSource = p.cfg.Store.Dir
	}

	return &model.AuditReport{
		RunID:           uuid.NewString(),
		PDFSource:       claimsPath,
		ExcelSource:     excelSource,
		Provider:        p.provider.Name(),
		Model:           p.cfg.LLM.Model,
		GeneratedAt:     time.Now().UTC(),
		Results:         results,
		Summary:         summary,
		Recommendations: audit.Recommendations(summary),
		Risk:            audit.Risk(summary),
	}, nil
}

// WriteReport renders the report artifacts into the output directory
// and returns their paths
func (p *Pipeline) WriteReport(report *model.AuditReport) (jsonPath, mdPath string, err error) {
	return p.renderer.WriteReport(report, p.cfg.Output.Dir)
}

package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/extract"
	"github.com/dkorolev/crossfoot/internal/model"
	"github.com/dkorolev/crossfoot/internal/workbook"
)

// Opener resolves one worksheet from a workbook path. Each job invokes
// it independently, so workers never share a file handle.
type Opener func(path, sheet string) (*workbook.Sheet, error)

// SheetJob detects tables and builds cell contexts for one worksheet
type SheetJob struct {
	Path     string
	Sheet    string
	Open     Opener
	Detector *extract.TableDetector
	Builder  *extract.ContextBuilder
}

// SheetResult is the self-contained outcome of one sheet extraction
type SheetResult struct {
	Sheet    string
	Contexts []model.CellContext
	Tables   int
	Err      error
}

// GetError returns the extraction error, if any
func (r *SheetResult) GetError() error {
	return r.Err
}

// Execute opens the job's own read-only handle, detects table regions
// and emits the sheet's context records
func (j *SheetJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &SheetResult{Sheet: j.Sheet, Err: err}
	}

	sheet, err := j.Open(j.Path, j.Sheet)
	if err != nil {
		return &SheetResult{Sheet: j.Sheet, Err: fmt.Errorf("open sheet %q: %w", j.Sheet, err)}
	}

	regions := j.Detector.DetectTables(sheet)
	contexts := j.Builder.BuildContexts(sheet, regions)

	return &SheetResult{Sheet: j.Sheet, Contexts: contexts, Tables: len(regions)}
}

// Extractor runs one extraction job per worksheet across a pool
type Extractor struct {
	detector *extract.TableDetector
	builder  *extract.ContextBuilder
	open     Opener
	workers  int
	log      zerolog.Logger
}

// NewExtractor creates an extractor with the given detection tuning and
// worker count
func NewExtractor(cfg model.DetectionConfig, workers int, log zerolog.Logger) *Extractor {
	return &Extractor{
		detector: extract.NewTableDetector(cfg, log),
		builder:  extract.NewContextBuilder(cfg),
		open:     workbook.OpenSheet,
		workers:  workers,
		log:      log,
	}
}

// SetOpener overrides how jobs resolve worksheets. Tests use this to
// feed in-memory sheets.
func (e *Extractor) SetOpener(open Opener) {
	e.open = open
}

// ExtractWorkbook lists the file's worksheets and extracts them all
func (e *Extractor) ExtractWorkbook(ctx context.Context, path string) ([]SheetResult, error) {
	names, err := workbook.SheetNames(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractSheets(ctx, path, names), nil
}

// ExtractSheets runs one job per named worksheet. Results merge in
// completion order; callers must not assume sheet ordering.
func (e *Extractor) ExtractSheets(ctx context.Context, path string, sheets []string) []SheetResult {
	if len(sheets) == 0 {
		return nil
	}

	pool := NewPool(e.workers)
	pool.Start()

	go func() {
		for _, name := range sheets {
			pool.Submit(&SheetJob{
				Path:     path,
				Sheet:    name,
				Open:     e.open,
				Detector: e.detector,
				Builder:  e.builder,
			})
		}
		pool.Done()
	}()

	results := pool.Wait()

	out := make([]SheetResult, 0, len(results))
	for _, result := range results {
		sheet := result.(*SheetResult)
		if sheet.Err != nil {
			e.log.Warn().Err(sheet.Err).Str("sheet", sheet.Sheet).Msg("sheet extraction failed")
		}
		out = append(out, *sheet)
	}
	return out
}

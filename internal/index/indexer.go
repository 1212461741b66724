package index

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dkorolev/crossfoot/internal/cache"
	"github.com/dkorolev/crossfoot/internal/llm"
	"github.com/dkorolev/crossfoot/internal/model"
)

// Indexer embeds context records and assembles the searchable store
type Indexer struct {
	provider llm.Provider
	cache    *cache.Embeddings
	model    string
	dim      int
	inFlight int
	log      zerolog.Logger
}

// NewIndexer creates an indexer. A nil cache disables embedding reuse.
func NewIndexer(provider llm.Provider, embCache *cache.Embeddings, cfg *model.Config, log zerolog.Logger) *Indexer {
	inFlight := cfg.Embedding.Concurrency
	if inFlight <= 0 {
		inFlight = 10
	}

	return &Indexer{
		provider: provider,
		cache:    embCache,
		model:    cfg.LLM.EmbedModel,
		dim:      cfg.Embedding.Dimension,
		inFlight: inFlight,
		log:      log,
	}
}

// Build embeds every record and assembles the store. Vectors land at
// the same position as their record regardless of completion order. A
// failed embedding degrades to a pseudo-random placeholder so the
// record keeps its slot; the index itself is built in one step after
// every call has finished.
func (ix *Indexer) Build(ctx context.Context, records []model.CellContext) (*Store, error) {
	vectors := make([][]float32, len(records))
	var wg sync.WaitGroup
	var done atomic.Int64

	semaphore := make(chan struct{}, ix.inFlight)

	for i, rec := range records {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				vectors[idx] = placeholderVector(ix.dim)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			vectors[idx] = ix.embed(ctx, text)

			if n := done.Add(1); n%50 == 0 {
				ix.log.Info().Int64("embedded", n).Int("total", len(records)).Msg("embedding progress")
			}
		}(i, rec.FullContext)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flat := NewFlat(ix.dim)
	for _, vec := range vectors {
		if err := flat.Add(vec); err != nil {
			return nil, err
		}
	}

	ix.log.Info().Int("vectors", flat.Len()).Msg("vector index built")

	return &Store{Index: flat, Records: records}, nil
}

// embed resolves one text to a vector, consulting the cache first.
// Provider failures and wrong-length replies degrade to a placeholder.
func (ix *Indexer) embed(ctx context.Context, text string) []float32 {
	if ix.cache != nil {
		if vec, found := ix.cache.Get(ix.model, text); found && len(vec) == ix.dim {
			return vec
		}
	}

	vec, err := ix.provider.Embed(ctx, text)
	if err != nil {
		ix.log.Warn().Err(err).Str("context", truncate(text, 80)).Msg("embedding failed, using placeholder")
		return placeholderVector(ix.dim)
	}
	if len(vec) != ix.dim {
		ix.log.Warn().Int("got", len(vec)).Int("want", ix.dim).Msg("unexpected embedding length, using placeholder")
		return placeholderVector(ix.dim)
	}

	if ix.cache != nil {
		if err := ix.cache.Put(ix.model, text, vec); err != nil {
			ix.log.Warn().Err(err).Msg("embedding cache write failed")
		}
	}

	return vec
}

// placeholderVector fills a slot whose embedding call failed, keeping
// the record searchable without clustering near real vectors.
func placeholderVector(dim int) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = rand.Float32()
	}
	return vec
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

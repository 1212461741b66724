package model

import (
	"runtime"
	"time"
)

// Config carries every tunable for a reconciliation run. All thresholds
// the pipeline uses live here as named fields; nothing is hard-coded at
// the call sites.
type Config struct {
	Detection   DetectionConfig
	Matching    MatchingConfig
	Embedding   EmbeddingConfig
	Audit       AuditConfig
	Store       StoreConfig
	Cache       CacheConfig
	Concurrency ConcurrencyConfig
	Output      OutputConfig
	LLM         LLMConfig
}

// DetectionConfig tunes table-structure inference
type DetectionConfig struct {
	ClusterRadius  float64 // Neighborhood radius for spatial clustering, in cell units
	MinNeighbors   int     // Minimum neighbors for a core point
	MinTableCells  int     // Clusters smaller than this are discarded
	HeaderLookback int     // Columns (rows) scanned leftward (upward) for headers
	TitleLookback  int     // Rows above a region scanned for its title
	MinTitleLength int     // Trimmed title text must exceed this length
}

// MatchingConfig tunes the candidate tiers
type MatchingConfig struct {
	FuzzyThreshold   float64 // Minimum lexical ratio for the fuzzy tier
	NumericTolerance float64 // Maximum relative difference for the numeric tier
	ContextThreshold float64 // Minimum partial ratio for the context fallback
	ContextDiscount  float64 // Multiplier applied to context-fallback confidence
	TopCandidates    int     // Candidates retained per claim after ranking
}

// EmbeddingConfig tunes vector generation
type EmbeddingConfig struct {
	Dimension   int // Expected vector length from the provider
	Concurrency int // Maximum in-flight embedding calls
}

// AuditConfig tunes batch adjudication
type AuditConfig struct {
	BatchSize  int           // Claims per reasoning request
	BatchDelay time.Duration // Pause between consecutive batches
	MaxSample  int           // Context records included in a prompt at most
}

// StoreConfig locates the persisted index artifacts
type StoreConfig struct {
	Dir string // Holds index.bin and contexts.json
}

// CacheConfig controls the embedding cache
type CacheConfig struct {
	Enabled bool
	Dir     string
	TTL     time.Duration
}

// ConcurrencyConfig controls sheet-level parallelism
type ConcurrencyConfig struct {
	Workers int
}

// OutputConfig controls report artifacts and verbosity
type OutputConfig struct {
	Dir     string
	Verbose bool
}

// LLMConfig selects and parameterizes the generative provider
type LLMConfig struct {
	Provider    string // gemini, openai, ollama
	Model       string // Reasoning model name
	EmbedModel  string // Embedding model name
	APIKey      string
	BaseURL     string // Override endpoint (Ollama)
	Timeout     int    // Request timeout in seconds
	MaxTokens   int
	Temperature float32
}

// DefaultConfig returns the documented defaults for every knob
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			ClusterRadius:  3.0,
			MinNeighbors:   3,
			MinTableCells:  6,
			HeaderLookback: 3,
			TitleLookback:  3,
			MinTitleLength: 3,
		},
		Matching: MatchingConfig{
			FuzzyThreshold:   0.85,
			NumericTolerance: 0.01,
			ContextThreshold: 0.70,
			ContextDiscount:  0.80,
			TopCandidates:    5,
		},
		Embedding: EmbeddingConfig{
			Dimension:   768,
			Concurrency: 10,
		},
		Audit: AuditConfig{
			BatchSize:  8,
			BatchDelay: 2 * time.Second,
			MaxSample:  150,
		},
		Store: StoreConfig{
			Dir: "crossfoot-store",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".crossfoot-cache",
			TTL:     7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Dir: "crossfoot-reports",
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			EmbedModel:  "gemini-embedding-001",
			Timeout:     120,
			MaxTokens:   4096,
			Temperature: 0.1,
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkorolev/crossfoot/internal/logging"
	"github.com/dkorolev/crossfoot/internal/pipeline"
)

var (
	indexWorkers int
	indexNoCache bool
	cacheDir     string
	embedDim     int
	embedWorkers int
	indexTimeout time.Duration
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index <workbook.xlsx>",
	Short: "Detect tables in a workbook and build the semantic store",
	Long: `Index runs the first phase of a reconciliation:
- Detect table regions on every worksheet (one worker per sheet)
- Build a hierarchical semantic context for each table cell
- Embed every context via the configured provider
- Persist the vector index and context store for later audits

Example:
  crossfoot index statements.xlsx
  crossfoot index statements.xlsx --store-dir ./store --provider openai
  crossfoot index statements.xlsx --no-cache --embed-concurrency 4`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for the persisted index and context store")
	indexCmd.Flags().IntVar(&indexWorkers, "workers", 0, "sheet extraction workers (default: CPU count)")
	indexCmd.Flags().BoolVar(&indexNoCache, "no-cache", false, "disable the embedding cache")
	indexCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "embedding cache directory")
	indexCmd.Flags().IntVar(&embedDim, "embed-dim", 0, "embedding vector dimension")
	indexCmd.Flags().IntVar(&embedWorkers, "embed-concurrency", 0, "maximum in-flight embedding calls")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 30*time.Minute, "overall indexing timeout")

	indexCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (gemini, openai, ollama)")
	indexCmd.Flags().StringVar(&modelName, "model", "", "reasoning model name")
	indexCmd.Flags().StringVar(&embedModelName, "embed-model", "", "embedding model name")
}

func runIndex(cmd *cobra.Command, args []string) error {
	workbookPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	cfg := buildConfig()
	applyProviderFlags(cfg)
	if indexWorkers > 0 {
		cfg.Concurrency.Workers = indexWorkers
	}
	if indexNoCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if embedDim > 0 {
		cfg.Embedding.Dimension = embedDim
	}
	if embedWorkers > 0 {
		cfg.Embedding.Concurrency = embedWorkers
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Indexing: %s\n", workbookPath)
		fmt.Fprintf(os.Stderr, "Provider: %s (%s embeddings)\n", provider.Name(), cfg.LLM.EmbedModel)
		fmt.Fprintf(os.Stderr, "Store:    %s\n\n", cfg.Store.Dir)
	}

	p := pipeline.New(cfg, provider, *logging.Default())
	stats, err := p.Index(ctx, workbookPath)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Indexed %d contexts from %d tables across %d sheets", stats.Contexts, stats.Tables, stats.Sheets)
	if stats.FailedSheets > 0 {
		fmt.Fprintf(os.Stderr, " (%d sheets failed)", stats.FailedSheets)
	}
	fmt.Fprintf(os.Stderr, " in %s\n", stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "✓ Store written to %s\n", stats.StoreDir)

	return nil
}

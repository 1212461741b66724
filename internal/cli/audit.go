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
	auditWorkbook string
	outputDir     string
	batchSize     int
	batchDelay    time.Duration
	auditTimeout  time.Duration
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <claims.json>",
	Short: "Audit extracted claims against an indexed workbook",
	Long: `Audit runs the second phase of a reconciliation:
- Reload the persisted index and context store (run 'index' first)
- Retrieve exact, numeric, fuzzy and vector candidates per claim
- Adjudicate claims in sequential batches via the reasoning provider
- Write report.json and report.md with one result per claim

Example:
  crossfoot audit claims.json
  crossfoot audit claims.json --workbook statements.xlsx --output-dir ./reports
  crossfoot audit claims.json --batch-size 5 --batch-delay 3s`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&auditWorkbook, "workbook", "", "workbook name recorded in the report")
	auditCmd.Flags().StringVar(&storeDir, "store-dir", "", "directory holding the persisted index and context store")
	auditCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for report artifacts")
	auditCmd.Flags().IntVar(&batchSize, "batch-size", 0, "claims per reasoning request")
	auditCmd.Flags().DurationVar(&batchDelay, "batch-delay", 0, "pause between consecutive batches")
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 30*time.Minute, "overall audit timeout")

	auditCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (gemini, openai, ollama)")
	auditCmd.Flags().StringVar(&modelName, "model", "", "reasoning model name")
	auditCmd.Flags().StringVar(&embedModelName, "embed-model", "", "embedding model name")
}

func runAudit(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	cfg := buildConfig()
	applyProviderFlags(cfg)
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if batchSize > 0 {
		cfg.Audit.BatchSize = batchSize
	}
	if batchDelay > 0 {
		cfg.Audit.BatchDelay = batchDelay
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", claimsPath)
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", provider.Name(), cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Store:    %s\n\n", cfg.Store.Dir)
	}

	p := pipeline.New(cfg, provider, *logging.Default())
	report, err := p.Audit(ctx, claimsPath, auditWorkbook)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	jsonPath, mdPath, err := p.WriteReport(report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	pipeline.NewRenderer().WriteSummary(os.Stderr, report)
	fmt.Fprintf(os.Stderr, "\n✓ Wrote JSON: %s\n", jsonPath)
	fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)

	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkorolev/crossfoot/internal/llm"
	"github.com/dkorolev/crossfoot/internal/logging"
	"github.com/dkorolev/crossfoot/internal/model"
)

var (
	cfgFile string
	verbose bool

	// Provider selection, shared by the index and audit commands
	providerName   string
	modelName      string
	embedModelName string
	storeDir       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crossfoot",
	Short: "Crossfoot - reconcile presentation claims against spreadsheet data",
	Long: `Crossfoot reconciles numeric claims found in a business presentation
against the spreadsheet data that should substantiate them.

It infers table structure inside raw spreadsheet cells, builds a
hierarchical semantic context for every cell, indexes those contexts
for similarity search, retrieves multi-signal match candidates per
claim, and delegates the final matched/mismatched/unverifiable
decision to a reasoning model under a strict per-batch contract.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("crossfoot v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.crossfoot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.crossfoot")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CROSSFOOT_*
	viper.SetEnvPrefix("CROSSFOOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the run configuration: documented defaults,
// then config-file/environment overrides, then flag overrides applied
// by the calling command.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.embedmodel"); v != "" {
		cfg.LLM.EmbedModel = v
	}
	if v := viper.GetString("store.dir"); v != "" {
		cfg.Store.Dir = v
	}
	if v := viper.GetString("output.dir"); v != "" {
		cfg.Output.Dir = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// applyProviderFlags folds the shared provider flags into the config
func applyProviderFlags(cfg *model.Config) {
	if providerName != "" {
		cfg.LLM.Provider = providerName
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if embedModelName != "" {
		cfg.LLM.EmbedModel = embedModelName
	}
	if storeDir != "" {
		cfg.Store.Dir = storeDir
	}
}

// newProvider resolves the API key from the environment and constructs
// the configured provider. Keys are never read from the config file.
func newProvider(ctx context.Context, cfg *model.Config) (llm.Provider, error) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if base := os.Getenv("OLLAMA_BASE_URL"); base != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = base
		}
	default: // gemini
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	}

	return llm.NewProvider(ctx, llm.ConfigFromModel(cfg))
}

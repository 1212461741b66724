package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dkorolev/crossfoot/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage crossfoot configuration",
	Long: `View and initialize the crossfoot configuration file.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (CROSSFOOT_*)
  3. Config file ($HOME/.crossfoot/config.yaml)
  4. Built-in defaults`,
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		if viper.ConfigFileUsed() != "" {
			fmt.Printf("# Config file: %s\n", viper.ConfigFileUsed())
		} else {
			fmt.Println("# No config file found; showing defaults with environment overrides")
		}
		fmt.Print(string(data))
		return nil
	},
}

// configInitCmd writes the default configuration template
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		configDir := filepath.Join(home, ".crossfoot")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		configPath := filepath.Join(configDir, "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		fmt.Fprintln(f, "# Crossfoot configuration file")
		fmt.Fprintln(f, "#")
		fmt.Fprintln(f, "# Configuration hierarchy (highest to lowest priority):")
		fmt.Fprintln(f, "#   1. CLI flags")
		fmt.Fprintln(f, "#   2. Environment variables (CROSSFOOT_*)")
		fmt.Fprintln(f, "#   3. This config file")
		fmt.Fprintln(f, "#   4. Built-in defaults")
		fmt.Fprintln(f)

		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		fmt.Fprintln(f)
		fmt.Fprintln(f, "# API keys are read from the environment, never from this file:")
		fmt.Fprintln(f, "#   export GEMINI_API_KEY=...")
		fmt.Fprintln(f, "#   export OPENAI_API_KEY=sk-...")
		fmt.Fprintln(f, "#   export OLLAMA_BASE_URL=http://localhost:11434/v1")

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n  crossfoot config show\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

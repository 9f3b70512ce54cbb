package cli

import (
	"fmt"
	"os"

	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage readgedcom configuration",
	Long: `Manage readgedcom configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (READGEDCOM_*)
3. Config file (~/.readgedcom/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration including all sources (defaults, config file, env vars, flags).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (READGEDCOM_*, OPENAI_API_KEY)")
		fmt.Println("  3. Config file (~/.readgedcom/config.yaml)")
		fmt.Println("  4. Defaults (shown above)")

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.readgedcom/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.readgedcom"
		configPath := configDir + "/config.yaml"

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'readgedcom config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		// Helper for writing with error checking
		printf := func(format string, a ...interface{}) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(f, format, a...)
		}

		cfg := model.DefaultConfig()

		printf("# readgedcom Configuration File\n")
		printf("#\n")
		printf("# Configuration hierarchy (highest to lowest priority):\n")
		printf("#   1. CLI flags\n")
		printf("#   2. Environment variables (READGEDCOM_*)\n")
		printf("#   3. This config file\n")
		printf("#   4. Built-in defaults\n\n")

		printf("# Input limits\n")
		printf("input:\n")
		printf("  max_line_len: %d\n\n", cfg.Input.MaxLineLen)

		printf("# Parsed-report cache\n")
		printf("cache:\n")
		printf("  enabled: %v\n", cfg.Cache.Enabled)
		printf("  dir: %s\n", cfg.Cache.Dir)
		printf("  memory_ttl: %s\n", cfg.Cache.MemoryTTL)
		printf("  disk_ttl: %s\n\n", cfg.Cache.DiskTTL)

		printf("# Batch processing\n")
		printf("concurrency:\n")
		printf("  workers: %d\n\n", cfg.Concurrency.Workers)

		printf("# LLM API throttling (batch runs)\n")
		printf("rate_limiting:\n")
		printf("  requests_per_second: %g\n", cfg.RateLimiting.RequestsPerSecond)
		printf("  burst_size: %d\n\n", cfg.RateLimiting.BurstSize)

		printf("# Optional LLM summary (provider \"\" disables; API key from env only)\n")
		printf("llm:\n")
		printf("  provider: \"%s\"\n", cfg.LLM.Provider)
		printf("  model: \"%s\"\n", cfg.LLM.Model)
		printf("  timeout: %d\n", cfg.LLM.Timeout)
		printf("  max_tokens: %d\n", cfg.LLM.MaxTokens)

		if err != nil {
			return fmt.Errorf("error writing config file: %w", err)
		}

		fmt.Printf("Created config file: %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

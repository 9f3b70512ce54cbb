package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Jim-Clarke/readgedcom/internal/llm"
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outText     string
	outHTML     string
	noCache     bool
	maxLineLen  int
	llmEnabled  bool
	llmProvider string
	llmModel    string
	llmTimeout  time.Duration
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a single GEDCOM file and report on its contents",
	Long: `Parse reads one GEDCOM export and:
- Tokenizes every line and rebuilds the record hierarchy
- Extracts people, families and notes with full cross-linking
- Reports every line it could not understand, without ever aborting
- Prints a run summary with the unused-line count as a health metric

Example:
  readgedcom parse family.ged
  readgedcom parse family.ged --json report.json --text report.txt
  readgedcom parse family.ged --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Output flags
	parseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	parseCmd.Flags().StringVar(&outText, "text", "", "output text report path (optional)")
	parseCmd.Flags().StringVar(&outHTML, "html", "", "output HTML report path (optional)")

	// Input flags
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache (force fresh parse)")
	parseCmd.Flags().IntVar(&maxLineLen, "max-line-len", 4096, "max input line length in bytes")

	// LLM flags
	parseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	parseCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	parseCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	parseCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute, "timeout for LLM summary generation")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Input.MaxLineLen = maxLineLen
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	// Create pipeline and parse
	p := pipeline.NewPipeline(cfg)
	report, err := p.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	// Generate LLM summary if enabled (AFTER parsing, never affects the model)
	if llmEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()
		p.Summarize(ctx, report)
	}

	return renderParse(report, outJSON, outText, outHTML, verbose)
}

// configureLLM fills the LLM section of the config from flags and
// environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// renderParse writes the requested outputs and prints the run summary.
func renderParse(report *model.Report, jsonPath, textPath, htmlPath string, verbose bool) error {
	renderer := pipeline.NewRenderer(verbose)

	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", jsonPath)
		}
	}

	if textPath != "" {
		if err := renderer.RenderText(report, textPath); err != nil {
			return fmt.Errorf("render text: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote text: %s\n", textPath)
		}
	}

	if htmlPath != "" {
		if err := renderer.RenderHTML(report, htmlPath); err != nil {
			return fmt.Errorf("render HTML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote HTML: %s\n", htmlPath)
		}
	}

	// The LLM summary goes to its own file next to the text report
	if report.LLM != nil && report.LLM.Enabled && textPath != "" {
		llmPath := strings.TrimSuffix(textPath, ".txt") + ".llm.md"
		md := llm.RenderSeparateMarkdown(report.LLM)
		if err := renderer.RenderLLMMarkdown(md, llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Wrote LLM summary: %s\n", llmPath)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

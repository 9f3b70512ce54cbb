package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/pipeline"
	"github.com/Jim-Clarke/readgedcom/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache and the LLM flags are defined in parse.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Parse multiple GEDCOM files from a list in parallel",
	Long: `Batch processes multiple GEDCOM files concurrently:
- Read file paths from a list file (one per line, # comments allowed)
- Parse files in parallel with a configurable worker count
- Each parse itself stays single-threaded
- Write an individual JSON report for each file

Example:
  readgedcom batch files.txt
  readgedcom batch files.txt --concurrency 8 --output-dir ./reports
  readgedcom batch files.txt --llm --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./readgedcom-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache (force fresh parses)")
	batchCmd.Flags().IntVar(&maxLineLen, "max-line-len", 4096, "max input line length in bytes")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Batch input:  %s\n", listFile)
	fmt.Fprintf(os.Stderr, "Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "Timeout:      %v\n", batchTimeout)
	fmt.Fprintln(os.Stderr)

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Input.MaxLineLen = maxLineLen
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "LLM:          %s/%s\n", llmProvider, llmModel)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessListFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	renderer := pipeline.NewRenderer(verbose)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		if llmEnabled {
			p.Summarize(ctx, result.Report)
		}

		reportPath := filepath.Join(outputDir, reportFileName(result.Path))
		if err := renderer.RenderJSON(result.Report, reportPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, err)
			continue
		}

		successCount++
		s := result.Report.Stats
		fmt.Fprintf(os.Stderr, "ok   %s: %d persons, %d families, %d notes, %d diagnostics\n",
			result.Path, s.Persons, s.Families, s.Notes, s.Diagnostics)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Done: %d succeeded, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// reportFileName derives the per-file report name from the input path.
func reportFileName(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".json"
}

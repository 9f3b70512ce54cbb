package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/model"
)

// Parser parses one GEDCOM file into a report. Satisfied by
// pipeline.Pipeline; the indirection keeps this package free of pipeline
// wiring.
type Parser interface {
	ParseFile(path string) (*model.Report, error)
}

// ParseJob parses a single file.
type ParseJob struct {
	Path   string
	Parser Parser
}

// Execute runs the parse.
func (j *ParseJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ParseResult{Path: j.Path, Error: err}
	}
	report, err := j.Parser.ParseFile(j.Path)
	return &ParseResult{Path: j.Path, Report: report, Error: err}
}

// ParseResult is the outcome of one file parse.
type ParseResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the parse result.
func (r *ParseResult) GetError() error {
	return r.Error
}

// BatchProcessor parses many GEDCOM files concurrently, one file per
// worker. Each individual parse stays single-threaded.
type BatchProcessor struct {
	parser      Parser
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(parser Parser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
	}
}

// ProcessPaths parses the given files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ParseResult {
	if len(paths) == 0 {
		return []*ParseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ParseJob{Path: path, Parser: b.parser})
	}

	results := pool.Wait()

	parseResults := make([]*ParseResult, len(results))
	for i, result := range results {
		parseResults[i] = result.(*ParseResult)
	}

	return parseResults
}

// ProcessListFile reads file paths from a list file and parses them
// concurrently.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*ParseResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file, one per line. Blank
// lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

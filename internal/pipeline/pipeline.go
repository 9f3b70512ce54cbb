// Package pipeline wires the three parsing stages together and renders the
// result: read lines, tokenize, build the record forest, extract the
// semantic model, and hand back one Report carrying the model, the
// diagnostics batch, and the summary counts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Jim-Clarke/readgedcom/internal/cache"
	"github.com/Jim-Clarke/readgedcom/internal/diag"
	"github.com/Jim-Clarke/readgedcom/internal/extract"
	"github.com/Jim-Clarke/readgedcom/internal/llm"
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tokenize"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
	"github.com/Jim-Clarke/readgedcom/internal/worker"
)

// Pipeline runs the full parse for one file per call. The stages themselves
// are strictly sequential and single-threaded; only the batch layer above
// runs pipelines concurrently, one file per worker.
type Pipeline struct {
	reader     *Reader
	cache      cache.Cache
	summarizer *llm.Summarizer
	config     *model.Config
}

// NewPipeline creates a pipeline from the configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			s.SetLimiter(worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize))
			summarizer = s
		}
	}

	return &Pipeline{
		reader:     NewReader(cfg.Input.MaxLineLen),
		cache:      c,
		summarizer: summarizer,
		config:     cfg,
	}
}

// ParseLines runs tokenizer, tree builder and extractor over already-split
// lines. It never fails: all input problems become diagnostics on the
// report.
func (p *Pipeline) ParseLines(lines []string, source string) *model.Report {
	sink := diag.NewSink()

	tokens := tokenize.Tokenize(lines, sink)
	tokenize.CheckSequence(tokens, sink)

	forest := tree.Build(tokens, sink)
	tree.CheckForest(forest, sink)

	res := extract.Extract(forest, sink)

	return &model.Report{
		Source:   source,
		ParsedAt: time.Now().UTC(),
		Stats: model.Stats{
			Lines:       len(lines),
			Records:     len(forest),
			Persons:     len(res.Persons),
			Families:    len(res.Families),
			Notes:       len(res.Notes),
			UnusedLines: res.UnusedLines,
			Diagnostics: sink.Count(),
		},
		Header:      res.Header,
		Persons:     res.Persons,
		Families:    res.Families,
		Notes:       res.Notes,
		Diagnostics: sink.Diagnostics(),
	}
}

// ParseFile reads and parses one file, going through the report cache when
// one is configured. Cache problems are not errors: a miss or a failed
// write just means parsing again next time.
func (p *Pipeline) ParseFile(path string) (*model.Report, error) {
	read, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key := cache.ContentKey(read.Content)
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				return &report, nil
			}
			_ = p.cache.Delete(key)
		}
	}

	report := p.ParseLines(read.Lines, path)

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return report, nil
}

// Summarize attaches the optional LLM prose summary to a report. It is a
// no-op when no provider is configured, and a failure only warns: the parse
// result stands on its own.
func (p *Pipeline) Summarize(ctx context.Context, report *model.Report) {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return
	}
	summary, err := p.summarizer.GenerateSummary(ctx, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		return
	}
	report.LLM = summary
}

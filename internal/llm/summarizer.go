package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/worker"
)

// Summarizer generates the optional prose summary of a parse. It never
// touches the model or the diagnostics: a summary either attaches to the
// report or the report stands unchanged.
type Summarizer struct {
	provider Provider
	config   Config
	limiter  *worker.Limiter // nil means unthrottled
}

// NewSummarizer creates a summarizer from the configuration. A disabled
// configuration (empty provider) yields a summarizer whose IsEnabled is
// false.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// SetLimiter installs a shared rate limiter; batch runs use one so many
// files do not hammer the provider's API.
func (s *Summarizer) SetLimiter(l *worker.Limiter) {
	s.limiter = l
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the summary for one report.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}

// RenderSeparateMarkdown renders the summary as a standalone Markdown
// document, clearly labeled as model-generated.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	fmt.Fprintf(&b, "> Generated by %s (%s). This text is model output, not parsed data.\n\n",
		summary.Provider, summary.Model)

	if summary.SummaryMD == "" {
		b.WriteString("_No summary was generated._\n")
		return b.String()
	}

	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")
	return b.String()
}

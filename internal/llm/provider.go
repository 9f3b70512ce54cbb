package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a prose summary of a parsed report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization.
type SummarizeRequest struct {
	// Report is the parsed GEDCOM report to summarize.
	Report *model.Report

	// Prompt is an optional custom prompt (if empty, use default).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output.
type SummarizeResponse struct {
	// Summary is the generated summary text.
	Summary string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default summarization prompt. The model only
// sees data extracted from the file; it is told to restate, not to invent.
func BuildPrompt(report *model.Report) string {
	var b strings.Builder

	b.WriteString(`You are summarizing the contents of a parsed GEDCOM genealogy file.

RULES:
- Describe only the people, families and notes listed below.
- Do not invent names, dates, places or relationships.
- Mention data-quality problems if the diagnostics suggest any.
- Write a short Markdown summary (a few paragraphs at most).

`)

	s := report.Stats
	fmt.Fprintf(&b, "File: %s\n", report.Source)
	fmt.Fprintf(&b, "Counts: %d persons, %d families, %d notes, %d diagnostics, %d unused lines.\n\n",
		s.Persons, s.Families, s.Notes, s.Diagnostics, s.UnusedLines)

	b.WriteString("Persons:\n")
	for _, id := range report.PersonIDs() {
		p := report.Persons[id]
		fmt.Fprintf(&b, "- I%d: %s", id, p.PreferredName())
		if p.Birth != nil && p.Birth.Date != "" {
			fmt.Fprintf(&b, ", born %s", p.Birth.Date)
		}
		if p.Death != nil && p.Death.Date != "" {
			fmt.Fprintf(&b, ", died %s", p.Death.Date)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nFamilies:\n")
	for _, id := range report.FamilyIDs() {
		f := report.Families[id]
		fmt.Fprintf(&b, "- F%d: husband I%d, wife I%d, %d children\n",
			id, f.Husband, f.Wife, len(f.Children))
	}

	return b.String()
}

package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/Jim-Clarke/readgedcom/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Source: "sample.ged",
		Stats:  model.Stats{Persons: 2, Families: 1, Notes: 1, Diagnostics: 1},
		Persons: map[int]*model.Person{
			1: {
				ID:    1,
				Names: []model.NameVariant{{Name: "John /Smith/"}},
				Birth: &model.Event{Date: "1 JAN 1900"},
				Death: &model.Event{Date: "2 FEB 1980"},
			},
			2: {
				ID:    2,
				Names: []model.NameVariant{{Name: "Mary /Jones/"}},
			},
		},
		Families: map[int]*model.Family{
			1: {ID: 1, Husband: 1, Wife: 2, Children: []model.Child{{PersonID: 3}}},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	for _, want := range []string{
		"Do not invent names",
		"File: sample.ged",
		"Counts: 2 persons, 1 families, 1 notes, 1 diagnostics",
		"- I1: John /Smith/, born 1 JAN 1900, died 2 FEB 1980",
		"- I2: Mary /Jones/\n",
		"- F1: husband I1, wife I2, 1 children",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("empty provider = %v, %v; want nil, nil", p, err)
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("unknown provider must be an error")
	}

	p, err = NewProvider(Config{Provider: "OpenAI", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("openai provider: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name = %q", p.Name())
	}

	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("ollama provider: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name = %q", p.Name())
	}
}

func TestConfigFromModel(t *testing.T) {
	got := ConfigFromModel(model.LLMConfig{
		Provider:  "ollama",
		Model:     "llama3.2",
		BaseURL:   "http://localhost:11434",
		Timeout:   10,
		MaxTokens: 500,
	})
	if got.Provider != "ollama" || got.Model != "llama3.2" || got.BaseURL != "http://localhost:11434" {
		t.Errorf("converted config = %+v", got)
	}
	if got.Timeout != 10 || got.MaxTokens != 500 {
		t.Errorf("converted config = %+v", got)
	}
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if s.IsEnabled() {
		t.Error("summarizer without a provider must be disabled")
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if summary != nil || err != nil {
		t.Errorf("disabled summarizer = %v, %v; want nil, nil", summary, err)
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	if got := RenderSeparateMarkdown(nil); got != "" {
		t.Errorf("nil summary rendered %q", got)
	}
	if got := RenderSeparateMarkdown(&model.LLMSummary{}); got != "" {
		t.Errorf("disabled summary rendered %q", got)
	}

	md := RenderSeparateMarkdown(&model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		SummaryMD: "Two people and one family.",
	})
	for _, want := range []string{
		"# LLM Summary",
		"Generated by openai (gpt-4o-mini)",
		"Two people and one family.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := RenderSeparateMarkdown(&model.LLMSummary{Enabled: true, Provider: "ollama"})
	if !strings.Contains(empty, "_No summary was generated._") {
		t.Errorf("empty summary rendered %q", empty)
	}
}

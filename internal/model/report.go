package model

import (
	"sort"
	"time"

	"github.com/Jim-Clarke/readgedcom/internal/diag"
)

// Stats are the run-summary counts surfaced after a parse. UnusedLines is
// the coverage-audit result: tokens no handler consumed. Zero means the
// input was fully understood; anything else points at unmodeled constructs.
type Stats struct {
	Lines       int `json:"lines"`
	Records     int `json:"records"`
	Persons     int `json:"persons"`
	Families    int `json:"families"`
	Notes       int `json:"notes"`
	UnusedLines int `json:"unused_lines"`
	Diagnostics int `json:"diagnostics"`
}

// Report is the complete result of parsing one GEDCOM file: the semantic
// model, the diagnostics batch, and the summary counts. It is read-only once
// the pipeline returns it.
type Report struct {
	Source   string    `json:"source,omitempty"` // file path, "" for raw lines
	ParsedAt time.Time `json:"parsed_at"`
	Stats    Stats     `json:"stats"`

	Header   Header             `json:"header"`
	Persons  map[int]*Person    `json:"persons,omitempty"`
	Families map[int]*Family    `json:"families,omitempty"`
	Notes    map[string]*Note   `json:"notes,omitempty"`

	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`

	// LLM is the optional prose summary. It is generated after parsing and
	// never feeds back into the model or the diagnostics.
	LLM *LLMSummary `json:"llm,omitempty"`
}

// LLMSummary is an optional model-generated prose summary of the parse.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}

// PersonIDs returns the person ids in ascending order, for deterministic
// rendering.
func (r *Report) PersonIDs() []int {
	ids := make([]int, 0, len(r.Persons))
	for id := range r.Persons {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// FamilyIDs returns the family ids in ascending order.
func (r *Report) FamilyIDs() []int {
	ids := make([]int, 0, len(r.Families))
	for id := range r.Families {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// NoteIDs returns the note ids sorted lexically.
func (r *Report) NoteIDs() []string {
	ids := make([]string, 0, len(r.Notes))
	for id := range r.Notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package pipeline

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/model"
)

// Renderer writes a parsed report as JSON, plain text or HTML, and prints
// the run summary to stdout. It only reads the report.
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderText writes the human-readable genealogy listing.
func (r *Renderer) RenderText(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "GEDCOM report for %s\n", sourceLabel(report))
	if h := report.Header; h.Software != "" || h.Exported != nil {
		b.WriteString("Exported")
		if h.Exported != nil {
			fmt.Fprintf(&b, " %s %s", h.Exported.Date, h.Exported.Time)
		}
		if h.Software != "" {
			fmt.Fprintf(&b, " by %s %s", h.Software, h.SoftwareVersion)
		}
		if h.GedcomVersion != "" {
			fmt.Fprintf(&b, " (GEDCOM %s)", h.GedcomVersion)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	r.writePersons(&b, report)
	r.writeFamilies(&b, report)
	r.writeNotes(&b, report)
	r.writeDiagnostics(&b, report)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func (r *Renderer) writePersons(b *strings.Builder, report *model.Report) {
	fmt.Fprintf(b, "Persons (%d)\n", len(report.Persons))
	b.WriteString("-----------\n")
	for _, id := range report.PersonIDs() {
		p := report.Persons[id]
		fmt.Fprintf(b, "I%d  %s", id, p.PreferredName())
		if p.Sex != "" {
			fmt.Fprintf(b, " (%s)", p.Sex)
		}
		b.WriteString("\n")
		if p.Title != "" {
			fmt.Fprintf(b, "    Title: %s\n", p.Title)
		}
		if len(p.Names) > 1 {
			for _, n := range p.Names[1:] {
				fmt.Fprintf(b, "    Name (%s): %s\n", n.Kind, n.Name)
			}
		}
		writeEvent(b, "Born", p.Birth)
		writeEvent(b, "Died", p.Death)
		writeEvent(b, "Buried", p.Burial)
		writeEvent(b, "Emigrated", p.Emigration)
		for _, famID := range p.ChildIn {
			fmt.Fprintf(b, "    Child in family F%d\n", famID)
		}
		for _, famID := range p.SpouseIn {
			fmt.Fprintf(b, "    Spouse in family F%d\n", famID)
		}
		for _, noteID := range p.NoteIDs {
			fmt.Fprintf(b, "    Note %s\n", noteID)
		}
	}
	b.WriteString("\n")
}

func (r *Renderer) writeFamilies(b *strings.Builder, report *model.Report) {
	fmt.Fprintf(b, "Families (%d)\n", len(report.Families))
	b.WriteString("------------\n")
	for _, id := range report.FamilyIDs() {
		f := report.Families[id]
		fmt.Fprintf(b, "F%d\n", id)
		if f.Husband != 0 {
			fmt.Fprintf(b, "    Husband: I%d %s\n", f.Husband, personName(report, f.Husband))
		}
		if f.Wife != 0 {
			fmt.Fprintf(b, "    Wife: I%d %s\n", f.Wife, personName(report, f.Wife))
		}
		writeEvent(b, "Married", f.Marriage)
		if f.BeginStatus != "" {
			fmt.Fprintf(b, "    Status at formation: %s\n", f.BeginStatus)
		}
		if f.EndStatus != "" {
			fmt.Fprintf(b, "    Ended: %s", f.EndStatus)
			if f.EndEvent != nil {
				fmt.Fprintf(b, " (%s)", eventDetail(f.EndEvent))
			}
			b.WriteString("\n")
		}
		for _, c := range f.Children {
			fmt.Fprintf(b, "    Child: I%d %s", c.PersonID, personName(report, c.PersonID))
			if c.FatherRel != "" || c.MotherRel != "" {
				fmt.Fprintf(b, " (father: %s, mother: %s)", c.FatherRel, c.MotherRel)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func (r *Renderer) writeNotes(b *strings.Builder, report *model.Report) {
	fmt.Fprintf(b, "Notes (%d)\n", len(report.Notes))
	b.WriteString("---------\n")
	for _, id := range report.NoteIDs() {
		n := report.Notes[id]
		fmt.Fprintf(b, "%s", id)
		if n.OwnerID != 0 {
			fmt.Fprintf(b, " (person I%d)", n.OwnerID)
		} else {
			b.WriteString(" (document)")
		}
		b.WriteString("\n")
		for _, para := range n.Paragraphs {
			fmt.Fprintf(b, "    %s\n", para)
		}
	}
	b.WriteString("\n")
}

func (r *Renderer) writeDiagnostics(b *strings.Builder, report *model.Report) {
	if len(report.Diagnostics) == 0 {
		return
	}
	fmt.Fprintf(b, "Diagnostics (%d)\n", len(report.Diagnostics))
	b.WriteString("---------------\n")
	for _, d := range report.Diagnostics {
		fmt.Fprintf(b, "%s\n", d)
	}
}

// RenderSummary prints the run summary to stdout: the counts, then the
// diagnostics batch.
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Stats
	fmt.Printf("Parsed %s: %d lines, %d records\n", sourceLabel(report), s.Lines, s.Records)
	fmt.Printf("  Persons:  %d\n", s.Persons)
	fmt.Printf("  Families: %d\n", s.Families)
	fmt.Printf("  Notes:    %d\n", s.Notes)
	fmt.Printf("  Unused lines: %d\n", s.UnusedLines)
	fmt.Printf("  Diagnostics:  %d\n", s.Diagnostics)

	if len(report.Diagnostics) > 0 {
		fmt.Println()
		for _, d := range report.Diagnostics {
			fmt.Printf("  %s\n", d)
		}
	}
}

// RenderLLMMarkdown writes the separate LLM summary file.
func (r *Renderer) RenderLLMMarkdown(md string, path string) error {
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

func sourceLabel(report *model.Report) string {
	if report.Source == "" {
		return "(stdin)"
	}
	return report.Source
}

func personName(report *model.Report, id int) string {
	if p, ok := report.Persons[id]; ok {
		return p.PreferredName()
	}
	return "(unknown)"
}

func writeEvent(b *strings.Builder, label string, ev *model.Event) {
	if ev == nil {
		return
	}
	fmt.Fprintf(b, "    %s: %s\n", label, eventDetail(ev))
}

func eventDetail(ev *model.Event) string {
	switch {
	case ev.Date != "" && ev.Place != "":
		return ev.Date + ", " + ev.Place
	case ev.Date != "":
		return ev.Date
	case ev.Place != "":
		return ev.Place
	default:
		return "(no detail)"
	}
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>GEDCOM report for {{.Source}}</title>
</head>
<body>
<h1>GEDCOM report for {{.Source}}</h1>
<p>{{.Stats.Persons}} persons, {{.Stats.Families}} families, {{.Stats.Notes}} notes,
{{.Stats.Diagnostics}} diagnostics, {{.Stats.UnusedLines}} unused lines.</p>

<h2>Persons</h2>
<ul>
{{range .PersonIDs}}{{with index $.Persons .}}<li>I{{.ID}} {{.PreferredName}}{{if .Sex}} ({{.Sex}}){{end}}</li>
{{end}}{{end}}</ul>

<h2>Families</h2>
<ul>
{{range .FamilyIDs}}{{with index $.Families .}}<li>F{{.ID}}{{if .Husband}} husband I{{.Husband}}{{end}}{{if .Wife}} wife I{{.Wife}}{{end}}{{if .Children}} ({{len .Children}} children){{end}}</li>
{{end}}{{end}}</ul>

<h2>Diagnostics</h2>
<ul>
{{range .Diagnostics}}<li>{{.}}</li>
{{end}}</ul>
</body>
</html>
`))

// RenderHTML writes a simple standalone HTML rendering of the report.
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML report: %w", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, report); err != nil {
		return fmt.Errorf("render HTML report: %w", err)
	}
	return nil
}

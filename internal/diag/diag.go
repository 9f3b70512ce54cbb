package diag

import "fmt"

// NoLine marks a diagnostic that is not tied to any input line.
const NoLine = -1

// Diagnostic is one problem found in the input. Line is 0-based, or NoLine
// for problems that concern the input as a whole.
type Diagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line == NoLine {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Sink accumulates diagnostics from all pipeline stages. Reporting never
// aborts anything: stages keep going and the caller presents the batch at
// the end alongside the run summary.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report records a diagnostic with no line position.
func (s *Sink) Report(msg string) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Line: NoLine, Message: msg})
}

// Reportf records a formatted diagnostic with no line position.
func (s *Sink) Reportf(format string, a ...interface{}) {
	s.Report(fmt.Sprintf(format, a...))
}

// ReportAt records a diagnostic tied to a 0-based input line.
func (s *Sink) ReportAt(line int, msg string) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Line: line, Message: msg})
}

// ReportAtf records a formatted diagnostic tied to a 0-based input line.
func (s *Sink) ReportAtf(line int, format string, a ...interface{}) {
	s.ReportAt(line, fmt.Sprintf(format, a...))
}

// Count returns the number of diagnostics recorded so far.
func (s *Sink) Count() int {
	return len(s.diagnostics)
}

// Diagnostics returns a copy of everything recorded, in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

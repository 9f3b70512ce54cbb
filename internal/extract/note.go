package extract

import (
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

const notePrefix = "NOTE"

func hasNotePrefix(value string) bool {
	return value == notePrefix || strings.HasPrefix(value, notePrefix+" ")
}

// buildNote walks one note record. The record's own value may carry the
// first paragraph fragment after the "NOTE " prefix; CONT children flush the
// accumulator and start a new paragraph, CONC children append to it without
// a break, and the accumulator is flushed at the end if non-empty.
func (e *Extractor) buildNote(root *tree.Node, id string) *model.Note {
	n := &model.Note{ID: id}

	// Strip the keyword and exactly one separator space; any further
	// whitespace is paragraph content and is preserved.
	acc := strings.TrimPrefix(strings.TrimPrefix(root.Token.Value, notePrefix), " ")

	flush := func() {
		if acc != "" {
			n.Paragraphs = append(n.Paragraphs, acc)
		}
		acc = ""
	}

	for _, child := range root.Children {
		tok := child.Token
		switch tok.Tag {
		case "CONT":
			flush()
			acc = tok.Value
			e.consume(tok)
		case "CONC":
			acc += tok.Value
			e.consume(tok)
		default:
			e.sink.ReportAtf(tok.LineNum, "line ignored in note %s: %q", id, tok.Line)
		}
	}
	flush()

	return n
}

package extract

import (
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

// extractEvent pulls an optional date/place pair from a node's children.
// The node's own token is consumed by the caller; DATE and PLAC children are
// consumed here, repeated ones are overwrite diagnostics (first kept), and
// anything else is an ignored line.
func (e *Extractor) extractEvent(node *tree.Node) *model.Event {
	ev := &model.Event{}
	dateSet, placeSet := false, false

	for _, child := range node.Children {
		tok := child.Token
		switch tok.Tag {
		case "DATE":
			if dateSet {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite date of %q", node.Token.Line)
			} else {
				ev.Date = tok.Value
				dateSet = true
			}
			e.consume(tok)
		case "PLAC":
			if placeSet {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite place of %q", node.Token.Line)
			} else {
				ev.Place = tok.Value
				placeSet = true
			}
			e.consume(tok)
		default:
			e.sink.ReportAtf(tok.LineNum, "line ignored: %q", tok.Line)
		}
	}

	return ev
}

// extractTimestamp handles the timestamp subtree: the given node's only
// meaningful child is a DATE record, whose own first child carries a TIME
// value. Each violation is reported on its own. The node's token is consumed
// by the caller.
func (e *Extractor) extractTimestamp(node *tree.Node) *model.Timestamp {
	ts := &model.Timestamp{}

	if len(node.Children) == 0 {
		e.sink.ReportAtf(node.Token.LineNum, "no date in %q", node.Token.Line)
		return ts
	}

	dateNode := node.Children[0]
	if dateNode.Token.Tag != "DATE" {
		e.sink.ReportAtf(dateNode.Token.LineNum, "expected a date, got %q", dateNode.Token.Line)
		return ts
	}
	ts.Date = dateNode.Token.Value
	e.consume(dateNode.Token)

	e.fillTime(dateNode, ts)
	return ts
}

// fillTime reads the TIME value nested under a DATE node into ts.
func (e *Extractor) fillTime(dateNode *tree.Node, ts *model.Timestamp) {
	if len(dateNode.Children) == 0 {
		e.sink.ReportAtf(dateNode.Token.LineNum, "no time under date %q", dateNode.Token.Line)
		return
	}
	timeNode := dateNode.Children[0]
	if timeNode.Token.Tag != "TIME" {
		e.sink.ReportAtf(timeNode.Token.LineNum, "expected a time, got %q", timeNode.Token.Line)
		return
	}
	ts.Time = timeNode.Token.Value
	e.consume(timeNode.Token)
}

// refOfKind parses a value as an identifier and checks its kind, reporting a
// diagnostic on failure. The second result is false when the value is not a
// usable reference.
func (e *Extractor) refOfKind(line int, value, kind, what string) (model.Identifier, bool) {
	id, err := model.ParseIdentifier(value)
	if err != nil {
		e.sink.ReportAtf(line, "bad %s reference %q", what, value)
		return model.Identifier{}, false
	}
	if id.Kind != kind {
		e.sink.ReportAtf(line, "%s reference %s has kind %q, want %q", what, id, id.Kind, kind)
		return model.Identifier{}, false
	}
	return id, true
}

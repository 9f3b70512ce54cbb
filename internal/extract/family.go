package extract

import (
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

// Generic-event type labels. The source encodes several family status
// transitions as EVEN records distinguished only by the TYPE child.
const (
	evenDeathOfSpouse = "Death of one spouse"
	evenNotMarried    = "Not married"
	evenCommonLaw     = "Common law marriage"
	evenSeparation    = "Separation"
	evenAnnulment     = "Annulment"
)

// buildFamily walks one @F...@ FAM record.
func (e *Extractor) buildFamily(root *tree.Node, id int) *model.Family {
	f := &model.Family{ID: id}

	for _, child := range root.Children {
		tok := child.Token
		switch tok.Tag {
		case "HUSB":
			e.consume(tok)
			pid, ok := e.refOfKind(tok.LineNum, tok.Value, "I", "husband")
			if !ok {
				break
			}
			if f.Husband != 0 {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite husband of family %d", id)
				break
			}
			f.Husband = pid.Num

		case "WIFE":
			e.consume(tok)
			pid, ok := e.refOfKind(tok.LineNum, tok.Value, "I", "wife")
			if !ok {
				break
			}
			if f.Wife != 0 {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite wife of family %d", id)
				break
			}
			f.Wife = pid.Num

		case "CHIL":
			e.consume(tok)
			pid, ok := e.refOfKind(tok.LineNum, tok.Value, "I", "child")
			if !ok {
				break
			}
			if f.HasChild(pid.Num) {
				e.sink.ReportAtf(tok.LineNum, "duplicate child %s in family %d", pid, id)
				break
			}
			f.Children = append(f.Children, model.Child{PersonID: pid.Num})

		case "MARR":
			e.consume(tok)
			if f.Marriage != nil {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite marriage of family %d", id)
				break
			}
			f.Marriage = e.extractEvent(child)

		case "DIV":
			e.consume(tok)
			if tok.Value != "" && tok.Value != "Y" {
				e.sink.ReportAtf(tok.LineNum, "odd divorce value %q", tok.Value)
			}
			e.setEndStatus(tok.LineNum, f, model.EndStatusDivorce)
			e.setEndEvent(tok.LineNum, f, e.extractEvent(child))

		case "CHAN":
			if f.Changed != nil {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite change time of family %d", id)
				e.consume(tok)
				break
			}
			e.consume(tok)
			f.Changed = e.extractTimestamp(child)

		case "EVEN":
			e.extractFamilyEvent(child, f)

		default:
			e.sink.ReportAtf(tok.LineNum, "line ignored: %q", tok.Line)
		}
	}

	return f
}

// extractFamilyEvent handles a generic EVEN record. The first child must
// carry the TYPE label; an unrecognized label leaves the whole node
// unconsumed so the audit flags it too.
func (e *Extractor) extractFamilyEvent(node *tree.Node, f *model.Family) {
	tok := node.Token

	if len(node.Children) == 0 || node.Children[0].Token.Tag != "TYPE" {
		e.sink.ReportAtf(tok.LineNum, "event without a type label: %q", tok.Line)
		return
	}
	typeTok := node.Children[0].Token

	switch typeTok.Value {
	case evenDeathOfSpouse, evenSeparation, evenAnnulment:
		e.consume(tok)
		e.consume(typeTok)
		e.setEndStatus(typeTok.LineNum, f, typeTok.Value)
		e.setEndEvent(typeTok.LineNum, f, e.extractEventSkipType(node))

	case evenNotMarried, evenCommonLaw:
		e.consume(tok)
		e.consume(typeTok)
		if f.BeginStatus != "" {
			e.sink.ReportAtf(typeTok.LineNum, "attempt to overwrite begin status %q of family %d",
				f.BeginStatus, f.ID)
			break
		}
		f.BeginStatus = typeTok.Value

	default:
		e.sink.ReportAtf(typeTok.LineNum, "unknown event type %q", typeTok.Value)
	}
}

// extractEventSkipType is extractEvent over an EVEN node whose leading TYPE
// child has already been handled.
func (e *Extractor) extractEventSkipType(node *tree.Node) *model.Event {
	trimmed := &tree.Node{Token: node.Token, Children: node.Children[1:]}
	return e.extractEvent(trimmed)
}

// setEndStatus stores the family end status, first-write-wins.
func (e *Extractor) setEndStatus(line int, f *model.Family, status string) {
	if f.EndStatus != "" {
		e.sink.ReportAtf(line, "attempt to overwrite end status %q of family %d", f.EndStatus, f.ID)
		return
	}
	f.EndStatus = status
}

// setEndEvent stores the family end event, first-write-wins. A semantically
// empty event (no date, no place) is not stored and never conflicts.
func (e *Extractor) setEndEvent(line int, f *model.Family, ev *model.Event) {
	if ev == nil || (ev.Date == "" && ev.Place == "") {
		return
	}
	if f.EndEvent != nil {
		e.sink.ReportAtf(line, "attempt to overwrite end event of family %d", f.ID)
		return
	}
	f.EndEvent = ev
}

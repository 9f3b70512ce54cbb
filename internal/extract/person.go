package extract

import (
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

// buildPerson walks one @I...@ INDI record. Single-valued fields follow
// first-write-wins: a second occurrence is reported and discarded.
func (e *Extractor) buildPerson(root *tree.Node, id int) *model.Person {
	p := &model.Person{
		ID:        id,
		Pedigrees: make(map[int]model.ParentRelation),
	}

	for _, child := range root.Children {
		tok := child.Token
		switch tok.Tag {
		case "NAME":
			e.consume(tok)
			p.Names = append(p.Names, e.extractName(child))

		case "SEX":
			if p.Sex != "" {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite sex of person %d", id)
			} else {
				if tok.Value != "M" && tok.Value != "F" && tok.Value != "U" {
					e.sink.ReportAtf(tok.LineNum, "odd sex value %q", tok.Value)
				}
				p.Sex = tok.Value
			}
			e.consume(tok)

		case "TITL":
			if p.Title != "" {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite title of person %d", id)
			} else {
				p.Title = tok.Value
			}
			e.consume(tok)

		case "CHAN":
			if p.Changed != nil {
				e.sink.ReportAtf(tok.LineNum, "attempt to overwrite change time of person %d", id)
				e.consume(tok)
				break
			}
			e.consume(tok)
			p.Changed = e.extractTimestamp(child)

		case "BIRT":
			e.setLifeEvent(child, &p.Birth, "birth", id)
		case "DEAT":
			e.setLifeEvent(child, &p.Death, "death", id)
		case "BURI":
			e.setLifeEvent(child, &p.Burial, "burial", id)
		case "EMIG":
			e.setLifeEvent(child, &p.Emigration, "emigration", id)

		case "NOTE":
			e.consume(tok)
			noteID, err := model.ParseIdentifier(tok.Value)
			if err != nil || !noteID.IsNoteKind() {
				e.sink.ReportAtf(tok.LineNum, "bad note reference %q", tok.Value)
				break
			}
			p.NoteIDs = append(p.NoteIDs, noteID.Raw)

		case "FAMC":
			e.consume(tok)
			famID, ok := e.refOfKind(tok.LineNum, tok.Value, "F", "family")
			if !ok {
				break
			}
			if p.IsChildIn(famID.Num) {
				e.sink.ReportAtf(tok.LineNum,
					"attempt to overwrite child membership in family %d of person %d", famID.Num, id)
				break
			}
			p.ChildIn = append(p.ChildIn, famID.Num)
			e.extractPedigree(child, p, famID.Num)

		case "FAMS":
			e.consume(tok)
			famID, ok := e.refOfKind(tok.LineNum, tok.Value, "F", "family")
			if !ok {
				break
			}
			p.SpouseIn = append(p.SpouseIn, famID.Num)

		default:
			e.sink.ReportAtf(tok.LineNum, "line ignored: %q", tok.Line)
		}
	}

	return p
}

// setLifeEvent stores a once-only person event, keeping the first on a
// repeat.
func (e *Extractor) setLifeEvent(node *tree.Node, slot **model.Event, what string, id int) {
	e.consume(node.Token)
	if *slot != nil {
		e.sink.ReportAtf(node.Token.LineNum, "attempt to overwrite %s of person %d", what, id)
		return
	}
	*slot = e.extractEvent(node)
}

// extractName reads one NAME record: the base name from the value (required;
// empty is reported but stored) and the fixed set of optional sub-fields
// from the children.
func (e *Extractor) extractName(node *tree.Node) model.NameVariant {
	tok := node.Token
	if tok.Value == "" {
		e.sink.ReportAtf(tok.LineNum, "empty name for %q", tok.Line)
	}

	v := model.NameVariant{Name: tok.Value, Kind: model.NameKindBirth}
	kindSet := false

	// set writes a sub-field once; repeats are reported and discarded.
	set := func(field *string, child *tree.Node, what string) {
		if *field != "" {
			e.sink.ReportAtf(child.Token.LineNum, "attempt to overwrite name %s %q", what, *field)
		} else {
			*field = child.Token.Value
		}
		e.consume(child.Token)
	}

	for _, child := range node.Children {
		ct := child.Token
		switch ct.Tag {
		case "TYPE":
			if kindSet {
				e.sink.ReportAtf(ct.LineNum, "attempt to overwrite name type %q", v.Kind)
			} else if kind, ok := model.ParseNameKind(ct.Value); ok {
				v.Kind = kind
				kindSet = true
			}
			// Unrecognized type strings keep the default kind, silently.
			e.consume(ct)
		case "GIVN":
			set(&v.Given, child, "given name")
		case "SURN":
			set(&v.Surname, child, "surname")
		case "NPFX":
			set(&v.Prefix, child, "prefix")
		case "NICK":
			set(&v.Nickname, child, "nickname")
		case "SPFX":
			set(&v.SurnamePrefix, child, "surname prefix")
		case "NSFX":
			set(&v.Suffix, child, "suffix")
		default:
			e.sink.ReportAtf(ct.LineNum, "line ignored: %q", ct.Line)
		}
	}

	return v
}

// extractPedigree reads the relation-to-parents sub-records of a FAMC line.
// The combined PEDI form applies the same relation to both parents; the
// separate _FREL/_MREL form names them individually. Mixing both forms is
// reported and the combined form wins.
func (e *Extractor) extractPedigree(node *tree.Node, p *model.Person, famID int) {
	var pedi, frel, mrel string
	pediSet, frelSet, mrelSet := false, false, false

	for _, child := range node.Children {
		ct := child.Token
		switch ct.Tag {
		case "PEDI":
			if pediSet {
				e.sink.ReportAtf(ct.LineNum, "attempt to overwrite pedigree %q", pedi)
			} else {
				pedi = ct.Value
				pediSet = true
			}
			e.consume(ct)
		case "_FREL":
			if frelSet {
				e.sink.ReportAtf(ct.LineNum, "attempt to overwrite father relation %q", frel)
			} else {
				frel = ct.Value
				frelSet = true
			}
			e.consume(ct)
		case "_MREL":
			if mrelSet {
				e.sink.ReportAtf(ct.LineNum, "attempt to overwrite mother relation %q", mrel)
			} else {
				mrel = ct.Value
				mrelSet = true
			}
			e.consume(ct)
		default:
			e.sink.ReportAtf(ct.LineNum, "line ignored: %q", ct.Line)
		}
	}

	if !pediSet && !frelSet && !mrelSet {
		return
	}

	rel := model.ParentRelation{Father: frel, Mother: mrel}
	if pediSet {
		if frelSet || mrelSet {
			e.sink.ReportAtf(node.Token.LineNum,
				"both combined and separate pedigree forms for family %d", famID)
		}
		rel = model.ParentRelation{Father: pedi, Mother: pedi}
	}
	p.Pedigrees[famID] = rel
}

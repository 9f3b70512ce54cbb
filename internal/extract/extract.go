// Package extract walks the record forest and builds the semantic model:
// the header, and the person/family/note dictionaries with full
// cross-linking. Every problem goes to the diagnostic sink; nothing aborts.
// Tokens a handler understands are marked consumed, and the final coverage
// audit reports every line that no handler claimed.
package extract

import (
	"sort"

	"github.com/Jim-Clarke/readgedcom/internal/diag"
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tokenize"
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

// Result is the extracted model plus the coverage-audit count.
type Result struct {
	Header   model.Header
	Persons  map[int]*model.Person
	Families map[int]*model.Family
	Notes    map[string]*model.Note

	// UnusedLines counts body tokens never consumed by any handler. Zero
	// means the input was fully modeled.
	UnusedLines int
}

// Extractor carries the state of one extraction run.
type Extractor struct {
	sink      *diag.Sink
	header    model.Header
	persons   map[int]*model.Person
	families  map[int]*model.Family
	notes     map[string]*model.Note
	noteOrder []string // every note id built, in encounter order
}

// Extract builds the model from the forest. The first root is the header,
// the second the submitter (reserved, unprocessed), the last the trailer;
// everything in between is dispatched by its identifier kind.
func Extract(forest []*tree.Node, sink *diag.Sink) *Result {
	e := &Extractor{
		sink:     sink,
		persons:  make(map[int]*model.Person),
		families: make(map[int]*model.Family),
		notes:    make(map[string]*model.Note),
	}

	if len(forest) > 0 {
		e.buildHeader(forest[0])
	}

	if len(forest) >= 3 {
		for _, root := range forest[2 : len(forest)-1] {
			e.dispatch(root)
		}
	}

	e.relocatePedigrees()
	e.partitionNotes()

	return &Result{
		Header:      e.header,
		Persons:     e.persons,
		Families:    e.families,
		Notes:       e.notes,
		UnusedLines: e.audit(forest),
	}
}

// dispatch classifies one body root by its identifier tag and builds the
// matching entity. Malformed or unknown roots are reported and skipped whole,
// leaving their tokens unconsumed for the audit to flag as well.
func (e *Extractor) dispatch(root *tree.Node) {
	tok := root.Token

	id, err := model.ParseIdentifier(tok.Tag)
	if err != nil {
		e.sink.ReportAtf(tok.LineNum, "unknown tag %q", tok.Tag)
		return
	}

	switch {
	case id.Kind == "I":
		if tok.Value != "INDI" {
			e.sink.ReportAtf(tok.LineNum, "person record %s has value %q, want \"INDI\"", id, tok.Value)
			return
		}
		if id.Num <= 0 {
			e.sink.ReportAtf(tok.LineNum, "bad person id %s", id)
			return
		}
		if _, dup := e.persons[id.Num]; dup {
			e.sink.ReportAtf(tok.LineNum, "duplicate person id %s", id)
			return
		}
		e.consume(tok)
		e.persons[id.Num] = e.buildPerson(root, id.Num)

	case id.Kind == "F":
		if tok.Value != "FAM" {
			e.sink.ReportAtf(tok.LineNum, "family record %s has value %q, want \"FAM\"", id, tok.Value)
			return
		}
		if id.Num <= 0 {
			e.sink.ReportAtf(tok.LineNum, "bad family id %s", id)
			return
		}
		if _, dup := e.families[id.Num]; dup {
			e.sink.ReportAtf(tok.LineNum, "duplicate family id %s", id)
			return
		}
		e.consume(tok)
		e.families[id.Num] = e.buildFamily(root, id.Num)

	case id.IsNoteKind():
		if !hasNotePrefix(tok.Value) {
			e.sink.ReportAtf(tok.LineNum, "note record %s has value %q, want a \"NOTE\" value", id, tok.Value)
			return
		}
		if _, dup := e.notes[id.Raw]; dup {
			e.sink.ReportAtf(tok.LineNum, "duplicate note id %s", id)
			return
		}
		e.consume(tok)
		e.notes[id.Raw] = e.buildNote(root, id.Raw)
		e.noteOrder = append(e.noteOrder, id.Raw)

	default:
		e.sink.ReportAtf(tok.LineNum, "unknown tag %q", tok.Tag)
	}
}

// relocatePedigrees copies each child's transient (father, mother) relation
// pair onto the owning family's Child entry and drains the transient map.
// The source format records the pair on the child's own record, but it is an
// attribute of the family-child relationship.
func (e *Extractor) relocatePedigrees() {
	famIDs := make([]int, 0, len(e.families))
	for id := range e.families {
		famIDs = append(famIDs, id)
	}
	sort.Ints(famIDs)

	for _, famID := range famIDs {
		fam := e.families[famID]
		for i := range fam.Children {
			p, ok := e.persons[fam.Children[i].PersonID]
			if !ok {
				continue
			}
			rel, ok := p.Pedigrees[famID]
			if !ok {
				continue
			}
			fam.Children[i].FatherRel = rel.Father
			fam.Children[i].MotherRel = rel.Mother
			delete(p.Pedigrees, famID)
		}
	}
}

// partitionNotes decides note ownership by elimination: every note id some
// person claims is removed from the encounter-order list (first claim only;
// a shared note stays with its first claimant), and whatever remains belongs
// to the document header.
func (e *Extractor) partitionNotes() {
	remaining := make([]string, len(e.noteOrder))
	copy(remaining, e.noteOrder)

	personIDs := make([]int, 0, len(e.persons))
	for id := range e.persons {
		personIDs = append(personIDs, id)
	}
	sort.Ints(personIDs)

	for _, pid := range personIDs {
		for _, noteID := range e.persons[pid].NoteIDs {
			if removed := removeFirst(&remaining, noteID); removed {
				if note, ok := e.notes[noteID]; ok && note.OwnerID == 0 {
					note.OwnerID = pid
				}
			}
		}
	}

	e.header.NoteIDs = remaining
}

// removeFirst removes the first occurrence of v from *s and reports whether
// anything was removed.
func removeFirst(s *[]string, v string) bool {
	for i, x := range *s {
		if x == v {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// audit reports every body token still unconsumed and returns the total.
// The header, submitter and trailer roots are exempt: the header tolerates
// unknown children silently and the other two are structural.
func (e *Extractor) audit(forest []*tree.Node) int {
	if len(forest) >= 3 {
		for _, root := range forest[2 : len(forest)-1] {
			e.reportUnconsumed(root)
		}
	}
	return tree.CountUnconsumed(forest, true)
}

func (e *Extractor) reportUnconsumed(n *tree.Node) {
	if !n.Token.Consumed {
		e.sink.ReportAtf(n.Token.LineNum, "line never used: %q", n.Token.Line)
	}
	for _, c := range n.Children {
		e.reportUnconsumed(c)
	}
}

func (e *Extractor) consume(t *tokenize.Token) {
	t.Consumed = true
}

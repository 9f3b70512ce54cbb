package model

// EndStatusDivorce is the fixed end status recorded for a divorce record,
// regardless of the literal value on the line.
const EndStatusDivorce = "Divorce"

// Child is one child entry in a family: the person id plus the relations to
// each parent, filled in by the pedigree relocation pass (the source records
// them on the child, but they belong to the family-child relationship).
type Child struct {
	PersonID  int    `json:"person_id"`
	FatherRel string `json:"father_rel,omitempty"`
	MotherRel string `json:"mother_rel,omitempty"`
}

// Family is one family-unit record. Husband and Wife are person ids, 0 when
// absent. BeginStatus captures marital status at formation; EndStatus and
// EndEvent capture whatever terminated the unit (divorce, death of a
// spouse), which is distinct from the marriage event itself.
type Family struct {
	ID          int        `json:"id"`
	Changed     *Timestamp `json:"changed,omitempty"`
	Husband     int        `json:"husband,omitempty"`
	Wife        int        `json:"wife,omitempty"`
	Children    []Child    `json:"children,omitempty"`
	Marriage    *Event     `json:"marriage,omitempty"`
	BeginStatus string     `json:"begin_status,omitempty"`
	EndStatus   string     `json:"end_status,omitempty"`
	EndEvent    *Event     `json:"end_event,omitempty"`
}

// HasChild reports whether the family already lists the given person id.
func (f *Family) HasChild(personID int) bool {
	for _, c := range f.Children {
		if c.PersonID == personID {
			return true
		}
	}
	return false
}

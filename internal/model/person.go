package model

// NameKind classifies a name variant. The source format spells these out as
// free-form type strings; unrecognized strings leave the default in place.
type NameKind string

const (
	NameKindBirth     NameKind = "birth" // default when no type is given
	NameKindAsKnown   NameKind = "aka"
	NameKindImmigrant NameKind = "immigrant"
	NameKindMaiden    NameKind = "maiden"
	NameKindMarried   NameKind = "married"
)

// ParseNameKind maps a name-type string to its kind. The second result is
// false for unrecognized strings, which callers tolerate by keeping the
// default kind.
func ParseNameKind(s string) (NameKind, bool) {
	switch NameKind(s) {
	case NameKindBirth, NameKindAsKnown, NameKindImmigrant, NameKindMaiden, NameKindMarried:
		return NameKind(s), true
	}
	return NameKindBirth, false
}

// NameVariant is one name carried by a person. Name is the base string as
// written in the source (surname between slashes); the remaining fields are
// the optional structured sub-parts.
type NameVariant struct {
	Name          string   `json:"name"`
	Kind          NameKind `json:"kind"`
	Given         string   `json:"given,omitempty"`
	Surname       string   `json:"surname,omitempty"`
	Prefix        string   `json:"prefix,omitempty"`
	Nickname      string   `json:"nickname,omitempty"`
	SurnamePrefix string   `json:"surname_prefix,omitempty"`
	Suffix        string   `json:"suffix,omitempty"`
}

// ParentRelation is a child's relation to the two parents of one family,
// e.g. "birth"/"birth" or "adopted"/"adopted".
type ParentRelation struct {
	Father string `json:"father,omitempty"`
	Mother string `json:"mother,omitempty"`
}

// Person is one individual record. Ids are positive and unique. ChildIn and
// SpouseIn hold family ids: a person may be a child in more than one family
// (biological plus step) and a spouse in any number.
type Person struct {
	ID         int           `json:"id"`
	Names      []NameVariant `json:"names,omitempty"` // first is preferred
	Sex        string        `json:"sex,omitempty"`
	Title      string        `json:"title,omitempty"` // nobility title
	Changed    *Timestamp    `json:"changed,omitempty"`
	Birth      *Event        `json:"birth,omitempty"`
	Death      *Event        `json:"death,omitempty"`
	Burial     *Event        `json:"burial,omitempty"`
	Emigration *Event        `json:"emigration,omitempty"`
	NoteIDs    []string      `json:"note_ids,omitempty"`
	ChildIn    []int         `json:"child_in,omitempty"`
	SpouseIn   []int         `json:"spouse_in,omitempty"`

	// Pedigrees is transient: populated while scanning the person's own
	// record (the source stores child-to-parent relations on the child),
	// then drained into the owning family's Child entries by the
	// relocation pass. Empty once extraction completes.
	Pedigrees map[int]ParentRelation `json:"-"`
}

// IsChildIn reports whether the person already lists the given family id in
// ChildIn.
func (p *Person) IsChildIn(famID int) bool {
	for _, id := range p.ChildIn {
		if id == famID {
			return true
		}
	}
	return false
}

// PreferredName returns the person's primary name, or "" when none survived
// extraction.
func (p *Person) PreferredName() string {
	if len(p.Names) == 0 {
		return ""
	}
	return p.Names[0].Name
}

package model

// Note is one note record. ID is the full identifier string (e.g. "@N3@" or
// "@NI3@"): the two note kinds share a numeric namespace, so the number
// alone is not a key. OwnerID is the first person to claim the note, 0 for
// notes that belong to the document header (decided by elimination, since
// the source format has no ownership tag).
type Note struct {
	ID         string   `json:"id"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	OwnerID    int      `json:"owner_id,omitempty"`
}

// Header is the document-level metadata record.
type Header struct {
	Exported        *Timestamp `json:"exported,omitempty"`
	Software        string     `json:"software,omitempty"`
	SoftwareVersion string     `json:"software_version,omitempty"`
	GedcomVersion   string     `json:"gedcom_version,omitempty"`
	FileName        string     `json:"file_name,omitempty"`

	// NoteIDs lists the notes no person claimed, in original encounter
	// order: document notes by elimination.
	NoteIDs []string `json:"note_ids,omitempty"`
}

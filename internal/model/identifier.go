package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// identifierPattern matches GEDCOM cross-reference pointers such as @I12@,
// @F3@, @N7@ or @SUBM@. Digits are optional: the submitter pointer has none.
var identifierPattern = regexp.MustCompile(`^@([A-Z]+)([0-9]*)@$`)

// Identifier is a decomposed cross-reference pointer: a kind prefix of one or
// more uppercase letters and a non-negative number. Raw keeps the original
// string, which is the key for entities (notes) whose kinds share a numeric
// namespace but not an identifier namespace.
type Identifier struct {
	Kind string
	Num  int
	Raw  string
}

// ParseIdentifier decomposes a pointer string. Strings that do not match the
// @LETTERS DIGITS@ shape are an error; absent digits parse as number 0.
func ParseIdentifier(s string) (Identifier, error) {
	m := identifierPattern.FindStringSubmatch(s)
	if m == nil {
		return Identifier{}, fmt.Errorf("not an identifier: %q", s)
	}
	num := 0
	if m[2] != "" {
		// Cannot fail: the pattern admits digits only. Overflow on absurd
		// inputs yields an error and a zero id, which dispatch rejects.
		num, _ = strconv.Atoi(m[2])
	}
	return Identifier{Kind: m[1], Num: num, Raw: s}, nil
}

// IsNoteKind reports whether the identifier points at a note record.
func (id Identifier) IsNoteKind() bool {
	return id.Kind == "N" || id.Kind == "NI"
}

func (id Identifier) String() string {
	return id.Raw
}

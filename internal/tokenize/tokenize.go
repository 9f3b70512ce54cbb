package tokenize

import (
	"strconv"
	"strings"

	"github.com/Jim-Clarke/readgedcom/internal/diag"
)

// BadLevel is the sentinel level for lines whose level field did not parse.
// Tokens carrying it keep line numbering aligned for later diagnostics.
const BadLevel = -1

// Token is one tokenized input line: the leading level number, the tag that
// follows it, and whatever is left as the value. Consumed starts false and is
// flipped by whichever extractor handler recognizes the line; the coverage
// audit reads it at the end of the run. That flip is the only mutation of
// parsed input after tokenizing.
type Token struct {
	Line     string // original line text
	LineNum  int    // 0-based input position
	Level    int    // hierarchy level, BadLevel if unparseable
	Tag      string
	Value    string
	Consumed bool
}

// Tokenize converts raw input lines into tokens, one per line, in order.
// Malformed lines are reported to the sink but still yield a token, so the
// output length always equals the input length.
func Tokenize(lines []string, sink *diag.Sink) []Token {
	tokens := make([]Token, 0, len(lines))

	for i, line := range lines {
		tok := Token{Line: line, LineNum: i, Level: BadLevel}

		if line == "" {
			sink.ReportAt(i, "empty line")
			tokens = append(tokens, tok)
			continue
		}

		levelField, rest := splitFirst(line)
		level, err := strconv.Atoi(levelField)
		if err != nil || level < 0 {
			sink.ReportAtf(i, "bad level number %q", levelField)
		} else {
			tok.Level = level
		}

		tok.Tag, tok.Value = splitFirst(rest)
		tokens = append(tokens, tok)
	}

	return tokens
}

// splitFirst splits s at the first space. The second result is empty when
// there is no space.
func splitFirst(s string) (string, string) {
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}

// CheckSequence verifies the whole-file invariants over the token sequence:
// a HEAD first line, a TRLR last line, and no level increasing by more than
// one from each line to the next. Violations are reported, never fatal.
func CheckSequence(tokens []Token, sink *diag.Sink) {
	if len(tokens) == 0 {
		sink.Report("no input lines")
		return
	}

	first := tokens[0]
	if first.Level != 0 || first.Tag != "HEAD" || first.Value != "" {
		sink.ReportAtf(first.LineNum, "file does not start with \"0 HEAD\": %q", first.Line)
	}

	last := tokens[len(tokens)-1]
	if last.Level != 0 || last.Tag != "TRLR" || last.Value != "" {
		sink.ReportAtf(last.LineNum, "file does not end with \"0 TRLR\": %q", last.Line)
	}

	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		if prev.Level == BadLevel || cur.Level == BadLevel {
			continue // already reported as bad level numbers
		}
		if cur.Level-prev.Level > 1 {
			sink.ReportAtf(cur.LineNum, "unexpected level jump from %d to %d", prev.Level, cur.Level)
		}
	}
}

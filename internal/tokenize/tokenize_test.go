package tokenize

import (
	"strings"
	"testing"

	"github.com/Jim-Clarke/readgedcom/internal/diag"
)

func TestTokenize_OneTokenPerLine(t *testing.T) {
	lines := []string{
		"0 HEAD",
		"1 GEDC",
		"2 VERS 5.5.5",
		"",
		"x NAME broken",
		"0 TRLR",
	}
	sink := diag.NewSink()

	tokens := Tokenize(lines, sink)

	if len(tokens) != len(lines) {
		t.Fatalf("expected %d tokens, got %d", len(lines), len(tokens))
	}
	for i, tok := range tokens {
		if tok.LineNum != i {
			t.Errorf("token %d has line number %d", i, tok.LineNum)
		}
		if tok.Line != lines[i] {
			t.Errorf("token %d lost its original line: %q", i, tok.Line)
		}
	}
}

func TestTokenize_SplitsLevelTagValue(t *testing.T) {
	tests := []struct {
		line  string
		level int
		tag   string
		value string
	}{
		{"0 HEAD", 0, "HEAD", ""},
		{"1 NAME John /Smith/", 1, "NAME", "John /Smith/"},
		{"2 VERS 5.5.5", 2, "VERS", "5.5.5"},
		{"1 DIV", 1, "DIV", ""},
		{"0", 0, "", ""},
	}

	for _, tt := range tests {
		sink := diag.NewSink()
		tokens := Tokenize([]string{tt.line}, sink)
		tok := tokens[0]
		if tok.Level != tt.level || tok.Tag != tt.tag || tok.Value != tt.value {
			t.Errorf("Tokenize(%q) = (%d, %q, %q), want (%d, %q, %q)",
				tt.line, tok.Level, tok.Tag, tok.Value, tt.level, tt.tag, tt.value)
		}
		if sink.Count() != 0 {
			t.Errorf("Tokenize(%q) reported %d diagnostics", tt.line, sink.Count())
		}
	}
}

func TestTokenize_BadLevel(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"x NAME broken", "-1 NAME negative"}, sink)

	for i, tok := range tokens {
		if tok.Level != BadLevel {
			t.Errorf("token %d: expected sentinel level, got %d", i, tok.Level)
		}
	}
	if tokens[0].Tag != "NAME" || tokens[0].Value != "broken" {
		t.Errorf("bad level should not lose tag/value: %+v", tokens[0])
	}
	if sink.Count() != 2 {
		t.Errorf("expected 2 diagnostics, got %d", sink.Count())
	}
	if !strings.Contains(sink.Diagnostics()[0].Message, "bad level number") {
		t.Errorf("unexpected message: %q", sink.Diagnostics()[0].Message)
	}
}

func TestTokenize_EmptyLine(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"0 HEAD", "", "0 TRLR"}, sink)

	if len(tokens) != 3 {
		t.Fatalf("empty line must still produce a token, got %d tokens", len(tokens))
	}
	if tokens[1].Level != BadLevel || tokens[1].Tag != "" {
		t.Errorf("unexpected empty-line token: %+v", tokens[1])
	}
	if sink.Count() != 1 || sink.Diagnostics()[0].Message != "empty line" {
		t.Errorf("expected one empty-line diagnostic, got %v", sink.Diagnostics())
	}
}

func TestCheckSequence_Clean(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"0 HEAD", "1 GEDC", "2 VERS 5.5.5", "0 TRLR"}, sink)
	CheckSequence(tokens, sink)

	if sink.Count() != 0 {
		t.Errorf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestCheckSequence_MissingFrame(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"0 FOO", "0 BAR baz"}, sink)
	CheckSequence(tokens, sink)

	if sink.Count() != 2 {
		t.Fatalf("expected 2 diagnostics (no HEAD, no TRLR), got %v", sink.Diagnostics())
	}
}

func TestCheckSequence_LevelJump(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"0 HEAD", "2 VERS 5.5.5", "0 TRLR"}, sink)
	CheckSequence(tokens, sink)

	jumps := 0
	for _, d := range sink.Diagnostics() {
		if strings.Contains(d.Message, "level jump") {
			jumps++
			if d.Line != 1 {
				t.Errorf("jump reported on line %d, want 1", d.Line)
			}
		}
	}
	if jumps != 1 {
		t.Errorf("expected exactly one level-jump diagnostic, got %d", jumps)
	}
}

func TestCheckSequence_DecreasingLevelsLegal(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize([]string{"0 HEAD", "1 GEDC", "2 VERS 5.5.5", "0 TRLR"}, sink)
	CheckSequence(tokens, sink)

	for _, d := range sink.Diagnostics() {
		if strings.Contains(d.Message, "level jump") {
			t.Errorf("decreasing level must not be a jump: %v", d)
		}
	}
}

func TestCheckSequence_Empty(t *testing.T) {
	sink := diag.NewSink()
	CheckSequence(nil, sink)
	if sink.Count() != 1 {
		t.Errorf("expected a diagnostic for empty input, got %d", sink.Count())
	}
}

package tree

import (
	"strings"
	"testing"

	"github.com/Jim-Clarke/readgedcom/internal/diag"
	"github.com/Jim-Clarke/readgedcom/internal/tokenize"
)

func tokensFor(t *testing.T, lines []string) []tokenize.Token {
	t.Helper()
	sink := diag.NewSink()
	return tokenize.Tokenize(lines, sink)
}

func TestBuild_Shape(t *testing.T) {
	tokens := tokensFor(t, []string{
		"0 HEAD",
		"1 GEDC",
		"2 VERS 5.5.5",
		"1 DATE 1 JAN 2001",
		"0 TRLR",
	})
	sink := diag.NewSink()

	forest := Build(tokens, sink)

	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	head := forest[0]
	if len(head.Children) != 2 {
		t.Fatalf("expected 2 children under HEAD, got %d", len(head.Children))
	}
	if head.Children[0].Token.Tag != "GEDC" || head.Children[1].Token.Tag != "DATE" {
		t.Errorf("children out of order: %q, %q",
			head.Children[0].Token.Tag, head.Children[1].Token.Tag)
	}
	if len(head.Children[0].Children) != 1 || head.Children[0].Children[0].Token.Tag != "VERS" {
		t.Error("VERS should nest under GEDC")
	}
}

func TestBuild_FlattenRoundTrip(t *testing.T) {
	lines := []string{
		"0 HEAD",
		"1 SOUR Reunion",
		"2 VERS V8.0",
		"0 @SUBM@ SUBM",
		"0 @I1@ INDI",
		"1 NAME John /Smith/",
		"2 GIVN John",
		"1 SEX M",
		"0 TRLR",
	}
	tokens := tokensFor(t, lines)
	sink := diag.NewSink()

	forest := Build(tokens, sink)
	flat := Flatten(forest)

	if len(flat) != len(tokens) {
		t.Fatalf("flatten lost tokens: %d != %d", len(flat), len(tokens))
	}
	for i, tok := range flat {
		if tok.LineNum != i {
			t.Errorf("pre-order walk out of order at %d: line %d", i, tok.LineNum)
		}
	}
}

func TestBuild_LevelJumpBecomesRootOrDeepChild(t *testing.T) {
	// The level-2 token cannot chain onto the level-0 root, so it ends the
	// root's (empty) child run and becomes a root itself. No special case.
	tokens := tokensFor(t, []string{"0 HEAD", "2 VERS 5.5.5", "0 TRLR"})
	sink := diag.NewSink()

	forest := Build(tokens, sink)

	if len(forest) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(forest))
	}
	if forest[1].Token.Tag != "VERS" || len(forest[1].Children) != 0 {
		t.Errorf("unexpected middle root: %+v", forest[1].Token)
	}
}

func TestBuild_BadLevelNeverAdoptsChildren(t *testing.T) {
	// The empty line tokenizes with the sentinel level (-1). If it could
	// chain, every level-0 record after it would nest under it; instead it
	// must stand alone and the records that follow stay roots.
	tokens := tokensFor(t, []string{
		"0 HEAD",
		"0 @SUBM@ SUBM",
		"",
		"0 @I1@ INDI",
		"1 NAME John /Smith/",
		"0 TRLR",
	})
	sink := diag.NewSink()

	forest := Build(tokens, sink)

	if len(forest) != 5 {
		t.Fatalf("expected 5 roots, got %d", len(forest))
	}
	if forest[2].Token.Level != tokenize.BadLevel || len(forest[2].Children) != 0 {
		t.Errorf("sentinel root must be childless: %+v", forest[2])
	}
	person := forest[3]
	if person.Token.Tag != "@I1@" || len(person.Children) != 1 {
		t.Errorf("record after the sentinel lost its shape: %+v", person.Token)
	}
	if forest[4].Token.Tag != "TRLR" {
		t.Errorf("trailer is not the last root: %+v", forest[4].Token)
	}
}

func TestCheckForest_Clean(t *testing.T) {
	tokens := tokensFor(t, []string{"0 HEAD", "0 @SUBM@ SUBM", "0 @I1@ INDI", "0 TRLR"})
	sink := diag.NewSink()
	forest := Build(tokens, sink)

	CheckForest(forest, sink)

	if sink.Count() != 0 {
		t.Errorf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestCheckForest_BadFrame(t *testing.T) {
	tokens := tokensFor(t, []string{"0 FOO", "0 BAR", "0 TRLR extra"})
	sink := diag.NewSink()
	forest := Build(tokens, sink)

	CheckForest(forest, sink)

	if sink.Count() != 3 {
		t.Fatalf("expected 3 diagnostics (header, submitter, trailer), got %v", sink.Diagnostics())
	}
	msgs := make([]string, 0, 3)
	for _, d := range sink.Diagnostics() {
		msgs = append(msgs, d.Message)
	}
	joined := strings.Join(msgs, "; ")
	for _, want := range []string{"header", "submitter", "trailer"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q diagnostic in %q", want, joined)
		}
	}
}

func TestCheckForest_TrailerWithChildren(t *testing.T) {
	tokens := tokensFor(t, []string{"0 HEAD", "0 @SUBM@ SUBM", "0 TRLR", "1 FOO"})
	sink := diag.NewSink()
	forest := Build(tokens, sink)

	CheckForest(forest, sink)

	if sink.Count() != 1 {
		t.Errorf("expected a trailer diagnostic, got %v", sink.Diagnostics())
	}
}

func TestCountUnconsumed(t *testing.T) {
	tokens := tokensFor(t, []string{
		"0 HEAD",
		"0 @SUBM@ SUBM",
		"0 @I1@ INDI",
		"1 SEX M",
		"0 TRLR",
	})
	sink := diag.NewSink()
	forest := Build(tokens, sink)

	if got := CountUnconsumed(forest, false); got != 5 {
		t.Errorf("expected 5 unconsumed with structural roots, got %d", got)
	}
	if got := CountUnconsumed(forest, true); got != 2 {
		t.Errorf("expected 2 unconsumed body tokens, got %d", got)
	}

	// Consume the person record, leave SEX alone.
	forest[2].Token.Consumed = true
	if got := CountUnconsumed(forest, true); got != 1 {
		t.Errorf("expected 1 after consuming the root, got %d", got)
	}
}

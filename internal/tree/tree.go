package tree

import (
	"github.com/Jim-Clarke/readgedcom/internal/diag"
	"github.com/Jim-Clarke/readgedcom/internal/model"
	"github.com/Jim-Clarke/readgedcom/internal/tokenize"
)

// Node is one record in the reconstructed hierarchy: a single token plus the
// ordered child records nested exactly one level beneath it.
type Node struct {
	Token    *tokenize.Token
	Children []*Node
}

// Build reconstructs the forest implied by the token levels. Each top-level
// call to the node builder produces one root; roots are built until the
// token sequence is exhausted. A token whose level does not chain onto the
// node being built simply ends that node's child run; tokens with absurd
// levels become roots or deep children by the same rule. The one exception
// is the bad-level sentinel, which never adopts children (see buildNode).
func Build(tokens []tokenize.Token, sink *diag.Sink) []*Node {
	var forest []*Node
	i := 0
	for i < len(tokens) {
		var root *Node
		root, i = buildNode(tokens, i)
		forest = append(forest, root)
	}
	return forest
}

// buildNode consumes the token at pos as a node, then consumes children as
// long as the next token sits exactly one level deeper. Returns the node and
// the position of the first token it did not consume.
//
// A token carrying the bad-level sentinel becomes a childless node: the
// sentinel is -1, so letting it chain would make every level-0 record after
// it a child of one malformed line.
func buildNode(tokens []tokenize.Token, pos int) (*Node, int) {
	node := &Node{Token: &tokens[pos]}
	pos++
	if node.Token.Level == tokenize.BadLevel {
		return node, pos
	}
	for pos < len(tokens) && tokens[pos].Level == node.Token.Level+1 {
		var child *Node
		child, pos = buildNode(tokens, pos)
		node.Children = append(node.Children, child)
	}
	return node, pos
}

// CheckForest verifies the structural frame of a GEDCOM forest: the header
// root, the submitter root right after it, and a childless trailer root at
// the end. Diagnostics only; the forest is returned as built.
func CheckForest(forest []*Node, sink *diag.Sink) {
	if len(forest) == 0 {
		sink.Report("empty record forest")
		return
	}

	head := forest[0].Token
	if head.Level != 0 || head.Tag != "HEAD" || head.Value != "" {
		sink.ReportAtf(head.LineNum, "first record is not a header: %q", head.Line)
	}

	if len(forest) > 1 {
		subm := forest[1].Token
		id, err := model.ParseIdentifier(subm.Tag)
		if err != nil || id.Kind != "SUBM" || subm.Level != 0 || subm.Value != "SUBM" {
			sink.ReportAtf(subm.LineNum, "second record is not a submitter: %q", subm.Line)
		}
	}

	trlr := forest[len(forest)-1]
	if trlr.Token.Level != 0 || trlr.Token.Tag != "TRLR" || trlr.Token.Value != "" ||
		len(trlr.Children) != 0 {
		sink.ReportAtf(trlr.Token.LineNum, "last record is not a bare trailer: %q", trlr.Token.Line)
	}
}

// CountUnconsumed counts tokens in the forest whose consumed flag is still
// false. When skipStructural is true the header, submitter and trailer roots
// are excluded, matching the extractor's coverage audit, which only holds
// body records to full coverage.
func CountUnconsumed(forest []*Node, skipStructural bool) int {
	total := 0
	for i, root := range forest {
		if skipStructural && (i == 0 || i == 1 || i == len(forest)-1) {
			continue
		}
		total += countUnconsumed(root)
	}
	return total
}

func countUnconsumed(n *Node) int {
	count := 0
	if !n.Token.Consumed {
		count++
	}
	for _, c := range n.Children {
		count += countUnconsumed(c)
	}
	return count
}

// Flatten returns the pre-order token sequence of the forest. Building and
// flattening round-trip: the result matches the original token order.
func Flatten(forest []*Node) []*tokenize.Token {
	var out []*tokenize.Token
	var walk func(*Node)
	walk = func(n *Node) {
		out = append(out, n.Token)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, root := range forest {
		walk(root)
	}
	return out
}

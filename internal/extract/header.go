package extract

import (
	"github.com/Jim-Clarke/readgedcom/internal/tree"
)

// buildHeader reads the document-level metadata from the first root. Unlike
// person and family records, unrecognized header children are tolerated
// silently: exporters stuff all sorts of things in here, and the header is
// exempt from the coverage audit.
func (e *Extractor) buildHeader(root *tree.Node) {
	e.consume(root.Token)

	for _, child := range root.Children {
		tok := child.Token
		switch tok.Tag {
		case "DATE":
			// Export timestamp: the header's DATE line is itself the date
			// record of the timestamp subtree.
			e.header.Exported = e.extractTimestamp(&tree.Node{Token: root.Token, Children: []*tree.Node{child}})

		case "SOUR":
			e.header.Software = tok.Value
			e.consume(tok)
			for _, sub := range child.Children {
				if sub.Token.Tag == "VERS" {
					e.header.SoftwareVersion = sub.Token.Value
					e.consume(sub.Token)
				}
			}

		case "GEDC":
			e.consume(tok)
			for _, sub := range child.Children {
				if sub.Token.Tag == "VERS" {
					e.header.GedcomVersion = sub.Token.Value
					e.consume(sub.Token)
				}
			}

		case "FILE":
			if tok.Value == "" {
				e.sink.ReportAtf(tok.LineNum, "empty file name in header")
			}
			e.header.FileName = tok.Value
			e.consume(tok)

		default:
			// Tolerated silently; the audit skips the header root anyway.
		}
	}
}

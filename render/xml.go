package render

import (
	"fmt"
	"io"

	"github.com/akrennmair/jack/parser"
)

// xmlLine is one line of XML output: an opening tag, a closing tag, or a
// token on its own line.
type xmlLine struct {
	Depth int
	Tag   string
	Value string
	Leaf  bool
	Close bool
}

// XML writes the tree in the nand2tetris parse-tree format: one element per
// non-terminal and one <kind> value </kind> line per token.
func XML(w io.Writer, n parser.Node) error {
	if err := xmlTemplate.ExecuteTemplate(w, "xml", xmlLines(n, 0, nil)); err != nil {
		return fmt.Errorf("failed to render XML: %w", err)
	}
	return nil
}

func xmlLines(n parser.Node, depth int, lines []xmlLine) []xmlLine {
	lines = append(lines, xmlLine{Depth: depth, Tag: n.Label()})
	for _, child := range n.Children() {
		switch c := child.(type) {
		case parser.Token:
			lines = append(lines, xmlLine{Depth: depth + 1, Tag: c.Kind.String(), Value: c.Value, Leaf: true})
		case parser.Node:
			lines = xmlLines(c, depth+1, lines)
		}
	}
	return append(lines, xmlLine{Depth: depth, Tag: n.Label(), Close: true})
}

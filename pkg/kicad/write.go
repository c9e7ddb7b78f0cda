package kicad

import (
	"bytes"
	"strings"
)

// Render serializes the tree in KiCad's own layout: forms that contain
// nested forms break onto indented lines, scalar-only forms stay inline.
// The output is stable, so rendering a tree twice gives identical bytes.
func Render(root *Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, root, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	if !n.List {
		buf.WriteString(atomText(n))
		return
	}

	buf.WriteByte('(')

	// The leading run of atoms (form name and scalar arguments) stays on
	// the opening line.
	i := 0
	for ; i < len(n.Children) && !n.Children[i].List; i++ {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(atomText(n.Children[i]))
	}
	if i == len(n.Children) {
		buf.WriteByte(')')
		return
	}

	for ; i < len(n.Children); i++ {
		buf.WriteByte('\n')
		writeIndent(buf, depth+1)
		writeNode(buf, n.Children[i], depth+1)
	}
	buf.WriteByte('\n')
	writeIndent(buf, depth)
	buf.WriteByte(')')
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteByte('\t')
	}
}

func atomText(n *Node) string {
	if !n.Quoted && !needsQuotes(n.Atom) {
		return n.Atom
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range n.Atom {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuotes(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\r\n()\"\\")
}

package kicad

import (
	"strconv"
	"strings"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
)

// Node is one element of an s-expression tree: a bare atom, a quoted
// string, or a parenthesized form. The first child of a well-formed KiCad
// form is the bare atom naming it, e.g. (at 100 50) has name "at" and two
// arguments.
type Node struct {
	// Atom holds the token text for leaf nodes. Quoted atoms hold the
	// unescaped content.
	Atom   string
	Quoted bool
	// List marks a parenthesized form; Children holds its elements.
	List     bool
	Children []*Node
}

// Sym builds a bare symbol atom.
func Sym(s string) *Node { return &Node{Atom: s} }

// Str builds a quoted string atom.
func Str(s string) *Node { return &Node{Atom: s, Quoted: true} }

// Num builds a numeric atom formatted the way KiCad writes millimeters.
func Num(v float64) *Node { return &Node{Atom: FormatMM(v)} }

// Form builds a named list node from its arguments.
func Form(name string, children ...*Node) *Node {
	n := &Node{List: true, Children: make([]*Node, 0, len(children)+1)}
	n.Children = append(n.Children, Sym(name))
	n.Children = append(n.Children, children...)
	return n
}

// Name returns the form's leading symbol, or "" for atoms and malformed
// lists.
func (n *Node) Name() string {
	if !n.List || len(n.Children) == 0 {
		return ""
	}
	head := n.Children[0]
	if head.List || head.Quoted {
		return ""
	}
	return head.Atom
}

// Arg returns the text of the i-th argument after the form name, or ""
// when the argument is missing or itself a form.
func (n *Node) Arg(i int) string {
	idx := i + 1
	if !n.List || idx < 1 || idx >= len(n.Children) {
		return ""
	}
	c := n.Children[idx]
	if c.List {
		return ""
	}
	return c.Atom
}

// FloatArg parses the i-th argument as a number.
func (n *Node) FloatArg(i int) (float64, bool) {
	s := n.Arg(i)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Find returns the first child form with the given name, or nil.
func (n *Node) Find(name string) *Node {
	if !n.List {
		return nil
	}
	for _, c := range n.Children {
		if c.List && c.Name() == name {
			return c
		}
	}
	return nil
}

// FindAll returns every child form with the given name, in file order.
func (n *Node) FindAll(name string) []*Node {
	if !n.List {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.List && c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Remove deletes every child form with the given name and reports whether
// anything was removed.
func (n *Node) Remove(name string) bool {
	if !n.List {
		return false
	}
	kept := n.Children[:0]
	removed := false
	for _, c := range n.Children {
		if c.List && c.Name() == name {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
	return removed
}

// FormatMM renders a millimeter value the way KiCad writes coordinates:
// six decimals with trailing zeros trimmed.
func FormatMM(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

type parser struct {
	src  []byte
	pos  int
	line int
}

// ParseSExpr reads a single s-expression form from data. Trailing
// whitespace is allowed; anything else after the form is an error.
func ParseSExpr(data []byte) (*Node, error) {
	p := &parser{src: data, line: 1}
	p.skipSpace()
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, errors.New(errors.ErrCodeParse, "line %d: trailing data after root form", p.line)
	}
	return node, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		case '\n':
			p.line++
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseNode() (*Node, error) {
	if p.pos >= len(p.src) {
		return nil, errors.New(errors.ErrCodeParse, "line %d: unexpected end of input", p.line)
	}
	switch p.src[p.pos] {
	case '(':
		p.pos++
		n := &Node{List: true}
		for {
			p.skipSpace()
			if p.pos >= len(p.src) {
				return nil, errors.New(errors.ErrCodeParse, "line %d: unclosed form", p.line)
			}
			if p.src[p.pos] == ')' {
				p.pos++
				return n, nil
			}
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	case ')':
		return nil, errors.New(errors.ErrCodeParse, "line %d: unexpected closing parenthesis", p.line)
	case '"':
		return p.parseString()
	default:
		return p.parseAtom(), nil
	}
}

func (p *parser) parseString() (*Node, error) {
	start := p.line
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return &Node{Atom: b.String(), Quoted: true}, nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, errors.New(errors.ErrCodeParse, "line %d: unterminated string", start)
			}
			switch p.src[p.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(p.src[p.pos])
			}
			p.pos++
		case '\n':
			// KiCad escapes newlines inside strings, but be liberal in
			// what we accept.
			b.WriteByte('\n')
			p.line++
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, errors.New(errors.ErrCodeParse, "line %d: unterminated string", start)
}

func (p *parser) parseAtom() *Node {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n', '(', ')', '"':
			return &Node{Atom: string(p.src[start:p.pos])}
		}
		p.pos++
	}
	return &Node{Atom: string(p.src[start:p.pos])}
}

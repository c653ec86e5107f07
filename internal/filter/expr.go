// Package filter compiles catalog filters into record predicates and
// orderings. It owns the per-field mini-expression language, the structured
// filter assembly, the partial-precision date matching and the final
// ordering of results.
package filter

import (
	"fmt"
	"strings"
	"unicode"
)

// Mini-expression operators.
const (
	opAnd   = '+'
	opOr    = ','
	opOpen  = '['
	opClose = ']'
)

// Node is a parsed mini-expression.
type Node interface {
	isNode()
	String() string
}

// Term matches records whose field contains Pattern.
type Term struct {
	Pattern string
}

func (Term) isNode() {}

func (t Term) String() string { return t.Pattern }

// And matches when both operands match.
type And struct {
	Left  Node
	Right Node
}

func (And) isNode() {}

func (a And) String() string { return "[" + a.Left.String() + "+" + a.Right.String() + "]" }

// Or matches when either operand matches.
type Or struct {
	Left  Node
	Right Node
}

func (Or) isNode() {}

func (o Or) String() string { return "[" + o.Left.String() + "," + o.Right.String() + "]" }

// ParseError reports a malformed mini-expression.
type ParseError struct {
	Expr   string // normalized expression
	Pos    int    // byte offset into Expr
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid expression %q at offset %d: %s", e.Expr, e.Pos, e.Reason)
}

// Parser turns a mini-expression into a Node. An empty expression yields a
// nil Node and no error; a nil Node places no constraint on the field.
type Parser interface {
	Parse(expr string) (Node, error)
}

// FirstSplitParser is the catalog's historical mini-expression parser.
//
// It does not give '+' a higher binding power than ','. At each level it
// splits at the first '+' outside brackets, and only when there is none at
// the first ',' outside brackets. So "A+B,C" means A and (B or C), and
// "[A+B],C" is needed for (A and B) or C. Saved filters depend on this.
type FirstSplitParser struct{}

// Parse implements Parser.
func (FirstSplitParser) Parse(expr string) (Node, error) {
	s := NormalizeExpr(expr)
	if s == "" {
		return nil, nil
	}
	if pos, ok := checkBrackets(s); !ok {
		return nil, &ParseError{Expr: s, Pos: pos, Reason: "unbalanced brackets"}
	}
	p := splitParser{src: s}
	return p.parse(0, len(s))
}

// NormalizeExpr trims expr and drops whitespace next to operators and
// brackets. Whitespace inside a literal is kept, so "Ali Veli , Can" and
// "Ali Veli,Can" are the same expression.
func NormalizeExpr(expr string) string {
	expr = strings.TrimSpace(expr)
	var b strings.Builder
	b.Grow(len(expr))
	skipSpace := false
	for _, r := range expr {
		if isOperator(r) {
			trimmed := strings.TrimRightFunc(b.String(), unicode.IsSpace)
			b.Reset()
			b.WriteString(trimmed)
			b.WriteRune(r)
			skipSpace = true
			continue
		}
		if skipSpace && unicode.IsSpace(r) {
			continue
		}
		skipSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func isOperator(r rune) bool {
	return r == opAnd || r == opOr || r == opOpen || r == opClose
}

// checkBrackets returns the offset of the first offending bracket when s is
// unbalanced.
func checkBrackets(s string) (int, bool) {
	depth := 0
	lastOpen := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case opOpen:
			if depth == 0 {
				lastOpen = i
			}
			depth++
		case opClose:
			depth--
			if depth < 0 {
				return i, false
			}
		}
	}
	if depth != 0 {
		return lastOpen, false
	}
	return 0, true
}

type splitParser struct {
	src string
}

// parse handles src[lo:hi]. Offsets are kept absolute so errors point into
// the whole expression.
func (p *splitParser) parse(lo, hi int) (Node, error) {
	if i := p.topLevel(lo, hi, opAnd); i >= 0 {
		return p.binary(lo, i, hi, func(l, r Node) Node { return And{Left: l, Right: r} })
	}
	if i := p.topLevel(lo, hi, opOr); i >= 0 {
		return p.binary(lo, i, hi, func(l, r Node) Node { return Or{Left: l, Right: r} })
	}
	if p.enclosed(lo, hi) {
		return p.parse(lo+1, hi-1)
	}
	return p.literal(lo, hi)
}

func (p *splitParser) binary(lo, op, hi int, join func(l, r Node) Node) (Node, error) {
	left, err := p.operand(lo, op)
	if err != nil {
		return nil, err
	}
	right, err := p.operand(op+1, hi)
	if err != nil {
		return nil, err
	}
	return join(left, right), nil
}

// operand strips one layer of enclosing brackets before recursing.
func (p *splitParser) operand(lo, hi int) (Node, error) {
	if lo >= hi {
		return nil, &ParseError{Expr: p.src, Pos: lo, Reason: "expected a literal"}
	}
	if p.enclosed(lo, hi) {
		lo, hi = lo+1, hi-1
	}
	return p.parse(lo, hi)
}

func (p *splitParser) literal(lo, hi int) (Node, error) {
	if lo >= hi {
		return nil, &ParseError{Expr: p.src, Pos: lo, Reason: "expected a literal"}
	}
	if i := strings.IndexAny(p.src[lo:hi], "[]"); i >= 0 {
		return nil, &ParseError{Expr: p.src, Pos: lo + i, Reason: "bracket inside a literal"}
	}
	return Term{Pattern: p.src[lo:hi]}, nil
}

// topLevel returns the offset of the first op in src[lo:hi] outside any
// brackets, or -1.
func (p *splitParser) topLevel(lo, hi int, op byte) int {
	depth := 0
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case opOpen:
			depth++
		case opClose:
			depth--
		case op:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// enclosed reports whether src[lo:hi] is one bracketed group, i.e. the
// bracket at lo closes at hi-1.
func (p *splitParser) enclosed(lo, hi int) bool {
	if hi-lo < 2 || p.src[lo] != opOpen || p.src[hi-1] != opClose {
		return false
	}
	depth := 0
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case opOpen:
			depth++
		case opClose:
			depth--
			if depth == 0 {
				return i == hi-1
			}
		}
	}
	return false
}

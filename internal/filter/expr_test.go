package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, expr string) Node {
	t.Helper()
	node, err := FirstSplitParser{}.Parse(expr)
	require.NoError(t, err, "parse %q", expr)
	return node
}

func TestParse_FirstSplitBeatsPrecedence(t *testing.T) {
	want := And{Left: Term{"A"}, Right: Or{Left: Term{"B"}, Right: Term{"C"}}}
	assert.Equal(t, want, parse(t, "A+B,C"))
}

func TestParse_BracketsRestoreGrouping(t *testing.T) {
	want := Or{Left: And{Left: Term{"A"}, Right: Term{"B"}}, Right: Term{"C"}}
	assert.Equal(t, want, parse(t, "[A+B],C"))
}

func TestParse_AndFoundAfterOr(t *testing.T) {
	// The first top-level '+' is the root even when a ',' comes earlier.
	want := And{Left: Or{Left: Term{"A"}, Right: Term{"B"}}, Right: Term{"C"}}
	assert.Equal(t, want, parse(t, "A,B+C"))
}

func TestParse_RightNestedChains(t *testing.T) {
	assert.Equal(t,
		And{Left: Term{"A"}, Right: And{Left: Term{"B"}, Right: Term{"C"}}},
		parse(t, "A+B+C"))
	assert.Equal(t,
		Or{Left: Term{"A"}, Right: Or{Left: Term{"B"}, Right: Term{"C"}}},
		parse(t, "A,B,C"))
}

func TestParse_SingleTerm(t *testing.T) {
	assert.Equal(t, Term{"Ali Veli"}, parse(t, "  Ali Veli  "))
}

func TestParse_WhitespaceAroundOperators(t *testing.T) {
	assert.Equal(t, parse(t, "A,B"), parse(t, "A , B"))
	assert.Equal(t, parse(t, "[A+B],C"), parse(t, " [ A + B ] ,  C "))
	assert.Equal(t,
		Or{Left: Term{"Ayşe Yılmaz"}, Right: Term{"Can 2"}},
		parse(t, "Ayşe Yılmaz , Can 2"))
}

func TestParse_LiteralsKeepPunctuationAndDigits(t *testing.T) {
	assert.Equal(t, Term{"a01.b-c/d"}, parse(t, "a01.b-c/d"))
}

func TestParse_EnclosedWholeExpression(t *testing.T) {
	assert.Equal(t, And{Left: Term{"A"}, Right: Term{"B"}}, parse(t, "[A+B]"))
	assert.Equal(t, Term{"A"}, parse(t, "[[A]]"))
}

func TestParse_BracketedRightOperand(t *testing.T) {
	want := And{Left: Term{"A"}, Right: Or{Left: Term{"B"}, Right: Term{"C"}}}
	assert.Equal(t, want, parse(t, "A+[B,C]"))
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		node, err := FirstSplitParser{}.Parse(in)
		assert.NoError(t, err)
		assert.Nil(t, node)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in     string
		reason string
	}{
		{"[A+B", "unbalanced brackets"},
		{"A+B]", "unbalanced brackets"},
		{"]A[", "unbalanced brackets"},
		{"A+", "expected a literal"},
		{"+A", "expected a literal"},
		{"A,,B", "expected a literal"},
		{"[]", "expected a literal"},
		{"A[B]", "bracket inside a literal"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			node, err := FirstSplitParser{}.Parse(tc.in)
			assert.Nil(t, node)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.reason, pe.Reason)
		})
	}
}

func TestNormalizeExpr(t *testing.T) {
	assert.Equal(t, "[A+B],C", NormalizeExpr(" [ A + B ] , C "))
	assert.Equal(t, "Ali Veli,Can", NormalizeExpr("Ali Veli ,  Can"))
	assert.Equal(t, "", NormalizeExpr("   "))
}

func TestNode_String(t *testing.T) {
	assert.Equal(t, "[A+[B,C]]", parse(t, "A+B,C").String())
}

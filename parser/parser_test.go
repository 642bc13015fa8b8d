package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/parser"
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
)

func parseAll(t *testing.T, src string) ([]ast.Meta, *report.Report, bool) {
	t.Helper()
	f := source.NewFile("t.fly", src)
	r := report.New(report.Renderer{})
	p := parser.New(f, r)
	nodes := p.Parse()
	return nodes, r, p.Successful()
}

func TestOperatorPrecedenceAddMul(t *testing.T) {
	nodes, _, ok := parseAll(t, "a + b * c;")
	require.True(t, ok)
	require.Len(t, nodes, 1)

	bin, isBin := nodes[0].Item.(ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.OpAdd, bin.Op)

	rhs, isBin := bin.Right.Item.(ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	nodes, _, ok := parseAll(t, "a = b = c;")
	require.True(t, ok)
	require.Len(t, nodes, 1)

	top, isBin := nodes[0].Item.(ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.OpAssign, top.Op)

	_, lIsIdent := top.Left.Item.(ast.Identifier)
	assert.True(t, lIsIdent)

	rhs, isBin := top.Right.Item.(ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.OpAssign, rhs.Op)
}

func TestDotBeatsUnaryMinus(t *testing.T) {
	nodes, _, ok := parseAll(t, "-a.b;")
	require.True(t, ok)
	require.Len(t, nodes, 1)

	unary, isUnary := nodes[0].Item.(ast.Unary)
	require.True(t, isUnary)
	assert.Equal(t, ast.OpSub, unary.Op)

	_, isBin := unary.Operand.Item.(ast.Binary)
	assert.True(t, isBin, "operand of unary minus should be the `.` binary expression")
}

func TestPostfixChaining(t *testing.T) {
	nodes, _, ok := parseAll(t, "fn()(arg1, arg2)[0].field;")
	require.True(t, ok)
	require.Len(t, nodes, 1)

	dot, isBin := nodes[0].Item.(ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.OpDot, dot.Op)

	sub, isSub := dot.Left.Item.(ast.Subscript)
	require.True(t, isSub)
	require.NotNil(t, sub.Inner)

	outerCall, isCall := sub.Target.Item.(ast.Call)
	require.True(t, isCall)
	require.Len(t, outerCall.Args, 2)

	innerCall, isCall := outerCall.Target.Item.(ast.Call)
	require.True(t, isCall)
	require.Len(t, innerCall.Args, 0)

	_, isIdent := innerCall.Target.Item.(ast.Identifier)
	assert.True(t, isIdent)
}

func TestUnterminatedStringProducesE0001(t *testing.T) {
	_, r, ok := parseAll(t, `"unterminated`)
	assert.False(t, ok)
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "E0001", r.Diagnostics[0].Code)
}

func TestIfElseIfElseChain(t *testing.T) {
	nodes, _, ok := parseAll(t, "if 1 == 1 { } else if 2 == 2 { } else { }")
	require.True(t, ok)
	require.Len(t, nodes, 1)

	top, isIf := nodes[0].Item.(ast.If)
	require.True(t, isIf)
	require.Len(t, top.Branches, 2)

	elseIf, isIf := top.Branches[0].Item.(ast.If)
	require.True(t, isIf)
	assert.Len(t, elseIf.Branches, 0)

	trailingElse, isBlock := top.Branches[1].Item.(ast.Block)
	require.True(t, isBlock)
	assert.Empty(t, trailingElse.Body)
}

func TestEmptyStatementSkipped(t *testing.T) {
	nodes, _, ok := parseAll(t, "; ; a;")
	require.True(t, ok)
	require.Len(t, nodes, 1)
	_, isIdent := nodes[0].Item.(ast.Identifier)
	assert.True(t, isIdent)
}

func TestNeverInfiniteLoopsOnBadToken(t *testing.T) {
	// Each of these is syntactically broken in a distinct way; the parser
	// must terminate and emit at least one diagnostic for every one.
	badInputs := []string{
		"`",
		"+",
		"if {",
		"{ a",
		"fn(a, b",
		"[1, 2",
		"a +",
		"else { }",
	}
	for _, src := range badInputs {
		_, r, ok := parseAll(t, src)
		assert.False(t, ok, "input %q should fail", src)
		assert.NotEmpty(t, r.Diagnostics, "input %q should emit a diagnostic", src)
	}
}

func TestUnclosedBlockReportsE0011(t *testing.T) {
	_, r, ok := parseAll(t, "if true { a;")
	assert.False(t, ok)
	require.NotEmpty(t, r.Diagnostics)
	found := false
	for _, d := range r.Diagnostics {
		if d.Code == "E0011" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTrailingSemicolonRecorded(t *testing.T) {
	nodes, _, ok := parseAll(t, "a;")
	require.True(t, ok)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Semicolon)
}

func TestParenthesizedFlagRecorded(t *testing.T) {
	nodes, _, ok := parseAll(t, "(a);")
	require.True(t, ok)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Parenthesized)
}

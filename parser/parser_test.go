package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/phlex/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseSource([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func TestParse_EchoStatement(t *testing.T) {
	prog := parseOK(t, `<?php echo "hi";`)
	require.Len(t, prog.Statements, 1)
	echo, ok := prog.Statements[0].(*ast.EchoStmt)
	require.True(t, ok)
	require.Len(t, echo.Values, 1)
	str, ok := echo.Values[0].(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hi", string(str.Value))
}

func TestParse_EmptyStatement(t *testing.T) {
	prog := parseOK(t, `<?php ;`)
	require.Len(t, prog.Statements, 1)
	_, ok := prog.Statements[0].(*ast.EmptyStmt)
	assert.True(t, ok)
}

func TestParse_UnsetStatement(t *testing.T) {
	prog := parseOK(t, `<?php unset($a, $b);`)
	require.Len(t, prog.Statements, 1)
	unset, ok := prog.Statements[0].(*ast.UnsetStmt)
	require.True(t, ok)
	require.Len(t, unset.Vars, 2)
	a, ok := unset.Vars[0].(*ast.SimpleVariable)
	require.True(t, ok)
	assert.Equal(t, "a", a.Name)
}

func TestParse_VariableAssignment(t *testing.T) {
	prog := parseOK(t, `<?php $x = 1 + 2 * 3;`)
	require.Len(t, prog.Statements, 1)
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	assign, ok := exprStmt.Expr.(*ast.AssignmentExpr)
	require.True(t, ok)

	target, ok := assign.Target.(*ast.SimpleVariable)
	require.True(t, ok)
	assert.Equal(t, "x", target.Name)

	add, ok := assign.Value.(*ast.ArithmeticExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)

	mul, ok := add.Right.(*ast.ArithmeticExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestParse_ChainedTernaryIsRejected(t *testing.T) {
	// The ternary is non-associative: a ? b : c ? d : e is a parse error.
	_, err := ParseSource([]byte(`<?php $r = $a ? $b : $c ? $d : $e;`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, UnexpectedToken, perr.Kind)
}

func TestParse_ComparisonChainingIsRejected(t *testing.T) {
	_, err := ParseSource([]byte(`<?php $a < $b < $c;`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, UnexpectedToken, perr.Kind)
}

func TestParse_NamedArguments(t *testing.T) {
	prog := parseOK(t, `<?php foo(1, b: 2);`)
	exprStmt := prog.Statements[0].(*ast.ExpressionStmt)
	call := exprStmt.Expr.(*ast.CallExpr)
	require.Len(t, call.Args, 2)
	assert.Equal(t, "", call.Args[0].Name)
	assert.Equal(t, "b", call.Args[1].Name)
}

func TestParse_PositionalAfterNamedArgumentIsFatal(t *testing.T) {
	_, err := ParseSource([]byte(`<?php foo(b: 2, 1);`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, CannotUsePositionalArgumentAfterNamedArgument, perr.Kind)
	assert.Equal(t, 2, perr.ArgIndex)
}

func TestParse_NewWithClassAndArgs(t *testing.T) {
	prog := parseOK(t, `<?php $x = new Foo(1, 2);`)
	exprStmt := prog.Statements[0].(*ast.ExpressionStmt)
	assign := exprStmt.Expr.(*ast.AssignmentExpr)
	newExpr, ok := assign.Value.(*ast.NewExpr)
	require.True(t, ok)
	name, ok := newExpr.Class.(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "Foo", name.Value)
	assert.Len(t, newExpr.Args, 2)
}

func TestParse_MatchExpression(t *testing.T) {
	prog := parseOK(t, `<?php $r = match($x) { 1, 2 => "a", default => "b" };`)
	exprStmt := prog.Statements[0].(*ast.ExpressionStmt)
	assign := exprStmt.Expr.(*ast.AssignmentExpr)
	m, ok := assign.Value.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
	assert.Len(t, m.Arms[0].Conditions, 2)
	assert.Nil(t, m.Arms[1].Conditions)
}

func TestParse_ArrowFunctionCapturesOuterScope(t *testing.T) {
	prog := parseOK(t, `<?php $f = fn($x) => $x + $y;`)
	exprStmt := prog.Statements[0].(*ast.ExpressionStmt)
	assign := exprStmt.Expr.(*ast.AssignmentExpr)
	fn, ok := assign.Value.(*ast.ArrowFunctionExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
}

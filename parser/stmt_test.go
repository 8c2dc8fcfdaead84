package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/phlex/ast"
)

func TestParse_IfElseifElse(t *testing.T) {
	prog := parseOK(t, `<?php
if ($a) { echo 1; } elseif ($b) { echo 2; } else { echo 3; }`)
	require.Len(t, prog.Statements, 1)
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Elifs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestParse_IfAlternativeSyntax(t *testing.T) {
	prog := parseOK(t, `<?php
if ($a):
	echo 1;
elseif ($b):
	echo 2;
else:
	echo 3;
endif;`)
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	then, ok := ifStmt.Then.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, then.Statements, 1)
	require.Len(t, ifStmt.Elifs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestParse_ForeachWithKeyAndByRef(t *testing.T) {
	prog := parseOK(t, `<?php foreach ($items as $k => &$v) { echo $v; }`)
	fe, ok := prog.Statements[0].(*ast.ForeachStmt)
	require.True(t, ok)
	require.NotNil(t, fe.Key)
	assert.True(t, fe.ByRef)
}

func TestParse_ForeachAlternativeSyntax(t *testing.T) {
	prog := parseOK(t, `<?php foreach ($items as $v): echo $v; endforeach;`)
	fe, ok := prog.Statements[0].(*ast.ForeachStmt)
	require.True(t, ok)
	_, ok = fe.Body.(*ast.BlockStmt)
	assert.True(t, ok)
}

func TestParse_SwitchWithDefault(t *testing.T) {
	prog := parseOK(t, `<?php
switch ($x) {
	case 1:
		echo "one";
		break;
	default:
		echo "other";
}`)
	sw, ok := prog.Statements[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.NotNil(t, sw.Cases[0].Cond)
	assert.Nil(t, sw.Cases[1].Cond)
}

func TestParse_TryWithoutCatchOrFinallyIsFatal(t *testing.T) {
	_, err := ParseSource([]byte(`<?php try { doit(); }`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, TryWithoutCatchOrFinally, perr.Kind)
}

func TestParse_TryCatchMultiTypeFinally(t *testing.T) {
	prog := parseOK(t, `<?php
try {
	risky();
} catch (TypeErrorA|TypeErrorB $e) {
	handle($e);
} finally {
	cleanup();
}`)
	tryStmt, ok := prog.Statements[0].(*ast.TryStmt)
	require.True(t, ok)
	require.Len(t, tryStmt.Catches, 1)
	assert.Len(t, tryStmt.Catches[0].Types, 2)
	assert.Equal(t, "e", tryStmt.Catches[0].Var)
	require.NotNil(t, tryStmt.Finally)
}

func TestParse_StaticVarDeclaration(t *testing.T) {
	prog := parseOK(t, `<?php function counter() { static $n = 0; return $n; }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	stmt, ok := fn.Body.Statements[0].(*ast.StaticVarStmt)
	require.True(t, ok)
	require.Len(t, stmt.Vars, 1)
	assert.Equal(t, "n", stmt.Vars[0].Name)
}

func TestParse_DeclareStrictTypes(t *testing.T) {
	prog := parseOK(t, `<?php declare(strict_types=1);`)
	decl, ok := prog.Statements[0].(*ast.DeclareStmt)
	require.True(t, ok)
	require.Len(t, decl.Directives, 1)
	assert.Equal(t, "strict_types", decl.Directives[0].Name)
}

func TestParse_NamespaceBracedRejectsNestedNamespace(t *testing.T) {
	_, err := ParseSource([]byte(`<?php namespace A { namespace B { } }`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, NestedNamespaceDeclarations, perr.Kind)
}

func TestParse_NamespaceMixedFormsRejected(t *testing.T) {
	_, err := ParseSource([]byte(`<?php namespace A; namespace B { }`))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, MixingBracedAndUnbracedNamespaces, perr.Kind)
}

func TestParse_GroupedUseImport(t *testing.T) {
	prog := parseOK(t, `<?php use Foo\{Bar, Baz as Qux, function f};`)
	use, ok := prog.Statements[0].(*ast.UseStmt)
	require.True(t, ok)
	assert.Equal(t, "Foo", use.Prefix)
	require.Len(t, use.Items, 3)
	assert.Equal(t, "Qux", use.Items[1].Alias)
	assert.Equal(t, ast.UseFunction, use.Items[2].Kind)
}

func TestParse_FunctionDeclVsClosureStatement(t *testing.T) {
	prog := parseOK(t, `<?php
function named() { return 1; }
function () { return 2; };`)
	_, ok := prog.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	exprStmt, ok := prog.Statements[1].(*ast.ExpressionStmt)
	require.True(t, ok)
	_, ok = exprStmt.Expr.(*ast.ClosureExpr)
	assert.True(t, ok)
}

func TestParse_GotoAndLabel(t *testing.T) {
	prog := parseOK(t, `<?php goto end; end: echo "done";`)
	_, ok := prog.Statements[0].(*ast.GotoStmt)
	require.True(t, ok)
	_, ok = prog.Statements[1].(*ast.LabelStmt)
	assert.True(t, ok)
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/phlex/ast"
)

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	prog, err := ParseSource([]byte(src))
	require.Nil(t, prog)
	require.NotNil(t, err)
	return err.(*ParseError)
}

// TestParse_FinalAbstractClassIsFatal matches spec.md §8 boundary
// scenario 5.
func TestParse_FinalAbstractClassIsFatal(t *testing.T) {
	err := parseErr(t, `<?php final abstract class C {}`)
	assert.Equal(t, FinalModifierOnAbstractClass, err.Kind)
}

// TestParse_ReadonlyPropertyWithoutTypeIsFatal matches spec.md §8
// boundary scenario 6.
func TestParse_ReadonlyPropertyWithoutTypeIsFatal(t *testing.T) {
	err := parseErr(t, `<?php class C { public readonly $x; }`)
	assert.Equal(t, MissingTypeForReadonlyProperty, err.Kind)
}

func TestParse_ReadonlyPropertyWithDefaultIsFatal(t *testing.T) {
	err := parseErr(t, `<?php class C { public readonly int $x = 1; }`)
	assert.Equal(t, ReadonlyPropertyHasDefaultValue, err.Kind)
}

func TestParse_StaticReadonlyPropertyIsFatal(t *testing.T) {
	err := parseErr(t, `<?php class C { public static readonly int $x; }`)
	assert.Equal(t, StaticPropertyUsingReadonlyModifier, err.Kind)
}

func TestParse_ReadonlyTypedPropertyIsAccepted(t *testing.T) {
	prog, err := ParseSource([]byte(`<?php class C { public readonly int $x; }`))
	require.Nil(t, err)
	cls := prog.Statements[0].(*ast.ClassDecl)
	prop := cls.Members[0].(*ast.PropertyDecl)
	assert.Equal(t, "x", prop.Entries[0].Name)
}

func TestParse_DuplicateVisibilityModifierIsFatal(t *testing.T) {
	err := parseErr(t, `<?php class C { public private $x; }`)
	assert.Equal(t, MultipleVisibilityModifiers, err.Kind)
}

// TestParse_InterfaceMethodWithBodyIsFatal: interface methods are always
// treated as abstract (no body), so a body where a terminating `;` is
// expected is an ExpectedToken error.
func TestParse_InterfaceMethodWithBodyIsFatal(t *testing.T) {
	err := parseErr(t, `<?php interface I { public function f() {} }`)
	assert.Equal(t, ExpectedToken, err.Kind)
}

// TestParse_TraitAcceptsConstants exercises the spec.md §9 open-question
// decision: traits accept classish constants (the newer-AST-generation
// behavior), unlike the older tree's rejection.
func TestParse_TraitAcceptsConstants(t *testing.T) {
	prog, err := ParseSource([]byte(`<?php trait T { const X = 1; }`))
	require.Nil(t, err)
	trait := prog.Statements[0].(*ast.TraitDecl)
	_, ok := trait.Members[0].(*ast.ClassConstDecl)
	assert.True(t, ok)
}

func TestParse_BackedEnumRequiresCaseValues(t *testing.T) {
	err := parseErr(t, `<?php enum Suit: string { case Hearts; }`)
	assert.Equal(t, MissingCaseValueForBackedEnum, err.Kind)
}

func TestParse_UnitEnumRejectsCaseValue(t *testing.T) {
	err := parseErr(t, `<?php enum Suit { case Hearts = 1; }`)
	assert.Equal(t, CaseValueForUnitEnum, err.Kind)
}

func TestParse_PromotedPropertyOutsideConstructorIsFatal(t *testing.T) {
	err := parseErr(t, `<?php class C { public function f(public int $x) {} }`)
	assert.Equal(t, PromotedPropertyOutsideConstructor, err.Kind)
}

func TestParse_PromotedPropertyInConstructorIsAccepted(t *testing.T) {
	prog, err := ParseSource([]byte(`<?php class C { public function __construct(public int $x) {} }`))
	require.Nil(t, err)
	cls := prog.Statements[0].(*ast.ClassDecl)
	method := cls.Members[0].(*ast.MethodDecl)
	require.Len(t, method.Params, 1)
	assert.NotEmpty(t, method.Params[0].Promotion)
}

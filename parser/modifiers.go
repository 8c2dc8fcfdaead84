package parser

import (
	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

// modifierTarget names the declaration kind a raw modifier list is being
// validated against, per the table in spec.md §4.9.
type modifierTarget int

const (
	targetClass modifierTarget = iota
	targetClassMethod
	targetEnumMethod
	targetInterfaceMethod
	targetProperty
	targetPromotedProperty
	targetClassishConstant
	targetInterfaceConstant
)

func isVisibility(m ast.Modifier) bool {
	return m == ast.ModPublic || m == ast.ModProtected || m == ast.ModPrivate
}

// validateModifiers checks a raw modifier list against the allowed set
// and structural constraints for target, returning the first violation
// as a *ParseError. abstractClass/trait-or-interface inform the
// "abstract method requires abstract enclosing class" constraint for
// targetClassMethod.
func validateModifiers(mods []ast.Modifier, target modifierTarget, span lexer.Span, enclosingAbstract, enclosingTraitOrIface bool) *ParseError {
	seen := map[ast.Modifier]bool{}
	visCount := 0
	for _, m := range mods {
		if seen[m] {
			return &ParseError{Kind: MultipleModifiers, Span: span}
		}
		seen[m] = true
		if isVisibility(m) {
			visCount++
		}
	}
	if visCount > 1 {
		return &ParseError{Kind: MultipleVisibilityModifiers, Span: span}
	}

	allowed := func(set ...ast.Modifier) bool {
		for m := range seen {
			ok := false
			for _, a := range set {
				if m == a {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		return true
	}

	switch target {
	case targetClass:
		if !allowed(ast.ModFinal, ast.ModAbstract, ast.ModReadonly) {
			return &ParseError{Kind: CannotUseModifierOnClass, Span: span}
		}
		if seen[ast.ModFinal] && seen[ast.ModAbstract] {
			return &ParseError{Kind: FinalModifierOnAbstractClass, Span: span}
		}
	case targetClassMethod:
		if !allowed(ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModStatic, ast.ModFinal, ast.ModAbstract) {
			return &ParseError{Kind: CannotUseModifierOnClassMethod, Span: span}
		}
		if seen[ast.ModFinal] && seen[ast.ModAbstract] {
			return &ParseError{Kind: FinalModifierOnAbstractClassMember, Span: span}
		}
		if seen[ast.ModAbstract] && !enclosingAbstract && !enclosingTraitOrIface {
			return &ParseError{Kind: AbstractModifierOnNonAbstractClassMethod, Span: span}
		}
	case targetEnumMethod:
		if !allowed(ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModStatic, ast.ModFinal) {
			return &ParseError{Kind: CannotUseModifierOnEnumMethod, Span: span}
		}
	case targetInterfaceMethod:
		if !allowed(ast.ModPublic, ast.ModStatic) {
			return &ParseError{Kind: CannotUseModifierOnInterfaceMethod, Span: span}
		}
	case targetProperty:
		if !allowed(ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModStatic, ast.ModReadonly, ast.ModVar) {
			return &ParseError{Kind: CannotUseModifierOnProperty, Span: span}
		}
		if seen[ast.ModReadonly] && seen[ast.ModStatic] {
			return &ParseError{Kind: StaticPropertyUsingReadonlyModifier, Span: span}
		}
	case targetPromotedProperty:
		if !allowed(ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModReadonly) {
			return &ParseError{Kind: CannotUseModifierOnPromotedProperty, Span: span}
		}
	case targetClassishConstant:
		if !allowed(ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModFinal) {
			return &ParseError{Kind: CannotUseModifierOnConstant, Span: span}
		}
		if seen[ast.ModFinal] && seen[ast.ModPrivate] {
			return &ParseError{Kind: FinalModifierOnPrivateConstant, Span: span}
		}
	case targetInterfaceConstant:
		if !allowed(ast.ModPublic, ast.ModFinal) {
			return &ParseError{Kind: CannotUseModifierOnInterfaceConstant, Span: span}
		}
	}
	return nil
}

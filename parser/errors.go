package parser

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wudi/phlex/lexer"
)

// ParseErrorKind enumerates the fatal syntactic error conditions from
// spec.md §7. The parser halts on the first one it raises; like the
// lexer, it never attempts resynchronization (spec.md §4.11).
type ParseErrorKind int

const (
	ExpectedToken ParseErrorKind = iota
	UnexpectedToken
	MultipleModifiers
	MultipleVisibilityModifiers
	CannotUseModifierOnClass
	CannotUseModifierOnClassMethod
	CannotUseModifierOnEnumMethod
	CannotUseModifierOnInterfaceMethod
	CannotUseModifierOnProperty
	CannotUseModifierOnPromotedProperty
	CannotUseModifierOnConstant
	CannotUseModifierOnInterfaceConstant
	FinalModifierOnAbstractClass
	FinalModifierOnAbstractClassMember
	FinalModifierOnPrivateConstant
	StaticPropertyUsingReadonlyModifier
	ReadonlyPropertyHasDefaultValue
	MissingTypeForReadonlyProperty
	ForbiddenTypeUsedInProperty
	StandaloneTypeUsedInCombination
	AbstractModifierOnNonAbstractClassMethod
	ConstructorInEnum
	CaseValueForUnitEnum
	MissingCaseValueForBackedEnum
	PromotedPropertyOutsideConstructor
	PromotedPropertyOnAbstractConstructor
	VariadicPromotedProperty
	TryWithoutCatchOrFinally
	MixingBracedAndUnbracedNamespaces
	NestedNamespaceDeclarations
	CannotUsePositionalArgumentAfterNamedArgument
)

var parseErrorNames = map[ParseErrorKind]string{
	ExpectedToken:                         "expected-token",
	UnexpectedToken:                       "unexpected-token",
	MultipleModifiers:                     "multiple-modifiers",
	MultipleVisibilityModifiers:           "multiple-visibility-modifiers",
	CannotUseModifierOnClass:              "cannot-use-modifier-on-class",
	CannotUseModifierOnClassMethod:        "cannot-use-modifier-on-class-method",
	CannotUseModifierOnEnumMethod:         "cannot-use-modifier-on-enum-method",
	CannotUseModifierOnInterfaceMethod:    "cannot-use-modifier-on-interface-method",
	CannotUseModifierOnProperty:           "cannot-use-modifier-on-property",
	CannotUseModifierOnPromotedProperty:   "cannot-use-modifier-on-promoted-property",
	CannotUseModifierOnConstant:           "cannot-use-modifier-on-constant",
	CannotUseModifierOnInterfaceConstant:  "cannot-use-modifier-on-interface-constant",
	FinalModifierOnAbstractClass:          "final-modifier-on-abstract-class",
	FinalModifierOnAbstractClassMember:    "final-modifier-on-abstract-class-member",
	FinalModifierOnPrivateConstant:        "final-modifier-on-private-constant",
	StaticPropertyUsingReadonlyModifier:   "static-property-using-readonly-modifier",
	ReadonlyPropertyHasDefaultValue:       "readonly-property-has-default-value",
	MissingTypeForReadonlyProperty:        "missing-type-for-readonly-property",
	ForbiddenTypeUsedInProperty:           "forbidden-type-used-in-property",
	StandaloneTypeUsedInCombination:       "standalone-type-used-in-combination",
	AbstractModifierOnNonAbstractClassMethod: "abstract-modifier-on-non-abstract-class-method",
	ConstructorInEnum:                     "constructor-in-enum",
	CaseValueForUnitEnum:                  "case-value-for-unit-enum",
	MissingCaseValueForBackedEnum:         "missing-case-value-for-backed-enum",
	PromotedPropertyOutsideConstructor:    "promoted-property-outside-constructor",
	PromotedPropertyOnAbstractConstructor: "promoted-property-on-abstract-constructor",
	VariadicPromotedProperty:              "variadic-promoted-property",
	TryWithoutCatchOrFinally:              "try-without-catch-or-finally",
	MixingBracedAndUnbracedNamespaces:     "mixing-braced-and-unbraced-namespaces",
	NestedNamespaceDeclarations:           "nested-namespace-declarations",
	CannotUsePositionalArgumentAfterNamedArgument: "cannot-use-positional-argument-after-named-argument",
}

func (k ParseErrorKind) String() string {
	if name, ok := parseErrorNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError is the parser's single fatal diagnostic type. ExpectedToken
// carries the list of human-readable expected descriptions and the actual
// token found; every other kind that names an offending construct carries
// it in Subject (an identifier, type name, or similar).
type ParseError struct {
	Kind     ParseErrorKind
	Span     lexer.Span
	Expected []string
	Actual   string
	Subject  string
	// ArgIndex is the 1-based argument position for
	// CannotUsePositionalArgumentAfterNamedArgument, rendered as an
	// ordinal ("3rd argument") via humanize.Ordinal.
	ArgIndex int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ExpectedToken:
		return fmt.Sprintf("expected %s but found %s on line %d column %d",
			humanizeExpected(e.Expected), e.Actual, e.Span.Line, e.Span.Column)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %s on line %d column %d", e.Actual, e.Span.Line, e.Span.Column)
	case CannotUsePositionalArgumentAfterNamedArgument:
		return fmt.Sprintf("cannot use positional argument after named argument (%s argument) on line %d column %d",
			humanize.Ordinal(e.ArgIndex), e.Span.Line, e.Span.Column)
	default:
		if e.Subject != "" {
			return fmt.Sprintf("%s (%s) on line %d column %d", e.Kind, e.Subject, e.Span.Line, e.Span.Column)
		}
		return fmt.Sprintf("%s on line %d column %d", e.Kind, e.Span.Line, e.Span.Column)
	}
}

func humanizeExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "a token"
	case 1:
		return expected[0]
	default:
		out := expected[0]
		for _, e := range expected[1 : len(expected)-1] {
			out += ", " + e
		}
		out += " or " + expected[len(expected)-1]
		return out
	}
}

package parser

import (
	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

// builtinSimpleTypeKeywords lists the keyword tokens that spell a simple
// type name (spec.md §4.10's `simple` production) rather than an
// Identifier token.
var builtinSimpleTypeKeywords = map[lexer.TokenKind]string{
	lexer.KwArray:    "array",
	lexer.KwCallable: "callable",
	lexer.KwNull:     "null",
	lexer.KwTrue:     "true",
	lexer.KwFalse:    "false",
	lexer.KwStatic:   "static",
	lexer.KwSelf:     "self",
	lexer.KwParent:   "parent",
}

func (p *Parser) parseSimpleType() (*ast.SimpleType, *ParseError) {
	tok := p.ts.Current()
	if name, ok := builtinSimpleTypeKeywords[tok.Kind]; ok {
		p.ts.Next()
		return &ast.SimpleType{Name: name, Span: tok.Span}, nil
	}
	switch tok.Kind {
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier:
		p.ts.Next()
		return &ast.SimpleType{Name: string(tok.Value), Span: tok.Span}, nil
	}
	return nil, &ParseError{
		Kind:     ExpectedToken,
		Span:     tok.Span,
		Expected: []string{"a type name"},
		Actual:   describeToken(tok),
	}
}

// parseType parses the full `?T | A|B | A&B | T` type grammar of
// spec.md §4.10, enforcing that `?T` and standalone types (void, never,
// mixed) never combine with `|`/`&`.
func (p *Parser) parseType() (ast.Type, *ParseError) {
	start := p.ts.Current().Span
	if p.ts.Current().Kind == lexer.Question {
		p.ts.Next()
		inner, err := p.parseSimpleType()
		if err != nil {
			return nil, err
		}
		if ast.IsStandalone(inner.Name) {
			return nil, &ParseError{Kind: StandaloneTypeUsedInCombination, Span: start, Subject: inner.Name}
		}
		return &ast.NullableType{Inner: inner, Span: start}, nil
	}

	first, err := p.parseSimpleType()
	if err != nil {
		return nil, err
	}

	switch p.ts.Current().Kind {
	case lexer.Pipe:
		types := []ast.Type{first}
		for p.ts.Current().Kind == lexer.Pipe {
			p.ts.Next()
			next, err := p.parseSimpleType()
			if err != nil {
				return nil, err
			}
			if ast.IsStandalone(next.Name) {
				return nil, &ParseError{Kind: StandaloneTypeUsedInCombination, Span: next.Span, Subject: next.Name}
			}
			types = append(types, next)
		}
		if ast.IsStandalone(first.Name) {
			return nil, &ParseError{Kind: StandaloneTypeUsedInCombination, Span: first.Span, Subject: first.Name}
		}
		return &ast.UnionType{Types: types}, nil
	case lexer.Amp:
		// Disambiguate from a by-ref parameter (`Type &$name`): only
		// consume `&` as intersection-type glue when followed directly
		// by another type name, not by a variable or `...`.
		if p.startsSimpleType(p.ts.Lookahead(0)) {
			types := []ast.Type{first}
			for p.ts.Current().Kind == lexer.Amp && p.startsSimpleType(p.ts.Peek()) {
				p.ts.Next()
				next, err := p.parseSimpleType()
				if err != nil {
					return nil, err
				}
				if ast.IsStandalone(next.Name) {
					return nil, &ParseError{Kind: StandaloneTypeUsedInCombination, Span: next.Span, Subject: next.Name}
				}
				types = append(types, next)
			}
			if ast.IsStandalone(first.Name) {
				return nil, &ParseError{Kind: StandaloneTypeUsedInCombination, Span: first.Span, Subject: first.Name}
			}
			return &ast.IntersectionType{Types: types}, nil
		}
		return first, nil
	default:
		return first, nil
	}
}

func (p *Parser) startsSimpleType(tok lexer.Token) bool {
	if _, ok := builtinSimpleTypeKeywords[tok.Kind]; ok {
		return true
	}
	switch tok.Kind {
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier, lexer.Question:
		return true
	default:
		return false
	}
}

// typeStartsAt reports whether tok could begin a type annotation, used by
// parameter/property/return-type parsing to decide whether a type is
// present before the variable/body that follows.
func (p *Parser) typeStartsAt(tok lexer.Token) bool {
	return p.startsSimpleType(tok)
}

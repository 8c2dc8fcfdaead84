// Package parser implements a recursive-descent, Pratt-style parser over
// the token stream produced by package lexer, building the AST defined
// in package ast.
package parser

import (
	"fmt"

	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

// Parser drives statement and expression parsing over a TokenStream. It
// halts and returns on the first ParseError (spec.md §4.11); there is no
// error recovery.
type Parser struct {
	ts    *TokenStream
	state *State
}

// New constructs a Parser over an already-lexed token slice.
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		ts:    NewTokenStream(tokens),
		state: newState(),
	}
}

// ParseSource lexes and parses a complete PHP source file in one call.
func ParseSource(src []byte) (*ast.Program, error) {
	lx := lexer.New()
	tokens, synErr := lx.Tokenize(src)
	if synErr != nil {
		return nil, synErr
	}
	p := New(tokens)
	return p.Parse()
}

// Parse consumes the entire token stream and returns the top-level
// program (spec.md §4.6).
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.ts.IsEOF() {
		switch p.ts.Current().Kind {
		case lexer.OpenTagFull, lexer.OpenTagShort, lexer.OpenTagEcho, lexer.CloseTag:
			p.ts.Next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func describeToken(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of file"
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier:
		return fmt.Sprintf("identifier %q", string(tok.Value))
	case lexer.Variable:
		return fmt.Sprintf("variable $%s", string(tok.Value))
	default:
		return tok.Kind.String()
	}
}

// expect consumes the current token if it matches kind, otherwise
// returns an ExpectedToken ParseError.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *ParseError) {
	tok := p.ts.Current()
	if tok.Kind != kind {
		return tok, &ParseError{
			Kind:     ExpectedToken,
			Span:     tok.Span,
			Expected: []string{kind.String()},
			Actual:   describeToken(tok),
		}
	}
	return p.ts.Next(), nil
}

func (p *Parser) at(kind lexer.TokenKind) bool {
	return p.ts.Current().Kind == kind
}

func (p *Parser) accept(kind lexer.TokenKind) bool {
	if p.at(kind) {
		p.ts.Next()
		return true
	}
	return false
}

func (p *Parser) unexpected() *ParseError {
	tok := p.ts.Current()
	return &ParseError{Kind: UnexpectedToken, Span: tok.Span, Actual: describeToken(tok)}
}

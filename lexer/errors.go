package lexer

import "fmt"

// SyntaxErrorKind enumerates the fatal lexical error conditions from
// spec.md §4.3/§7. The lexer halts on the first one it raises; it never
// attempts resynchronization.
type SyntaxErrorKind int

const (
	UnexpectedEndOfFile SyntaxErrorKind = iota
	UnexpectedCharacter
	InvalidHaltCompiler
	InvalidOctalEscape
	InvalidOctalLiteral
	InvalidUnicodeEscape
	InvalidDocIndentation
	InvalidDocBodyIndentationLevel
	UnpredictableState
)

// SyntaxError is the lexer's single fatal diagnostic type. Every variant
// carries at least a Span; InvalidDocBodyIndentationLevel additionally
// carries the offending indentation amount, and UnexpectedCharacter the
// offending byte.
type SyntaxError struct {
	Kind   SyntaxErrorKind
	Span   Span
	Char   byte
	Amount int
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case UnexpectedEndOfFile:
		return fmt.Sprintf("unexpected end of file on line %d column %d", e.Span.Line, e.Span.Column)
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q on line %d column %d", rune(e.Char), e.Span.Line, e.Span.Column)
	case InvalidHaltCompiler:
		return fmt.Sprintf("invalid halt compiler on line %d column %d", e.Span.Line, e.Span.Column)
	case InvalidOctalEscape:
		return fmt.Sprintf("invalid octal escape on line %d column %d", e.Span.Line, e.Span.Column)
	case InvalidOctalLiteral:
		return fmt.Sprintf("invalid octal literal on line %d column %d", e.Span.Line, e.Span.Column)
	case InvalidUnicodeEscape:
		return fmt.Sprintf("invalid unicode escape on line %d column %d", e.Span.Line, e.Span.Column)
	case InvalidDocIndentation:
		return fmt.Sprintf("invalid doc indentation on line %d column %d", e.Span.Line, e.Span.Column)
	case InvalidDocBodyIndentationLevel:
		return fmt.Sprintf("invalid doc body indentation level (%d) on line %d column %d", e.Amount, e.Span.Line, e.Span.Column)
	case UnpredictableState:
		return fmt.Sprintf("reached an unpredictable state on line %d column %d", e.Span.Line, e.Span.Column)
	default:
		return fmt.Sprintf("syntax error on line %d column %d", e.Span.Line, e.Span.Column)
	}
}

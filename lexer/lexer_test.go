package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenKinds(t *testing.T, toks []Token) []TokenKind {
	t.Helper()
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestTokenize_BasicEcho(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php echo "hi"; ?>`))
	require.Nil(t, err)

	assert.Equal(t, []TokenKind{
		OpenTagFull, KwEcho, ConstantString, Semicolon, CloseTag, EOF,
	}, tokenKinds(t, toks))
}

func TestTokenize_VariableAssignment(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php $name = 'John'; $age = 25;`))
	require.Nil(t, err)

	assert.Equal(t, []TokenKind{
		OpenTagFull, Variable, Assign, ConstantString, Semicolon,
		Variable, Assign, LiteralInteger, Semicolon, EOF,
	}, tokenKinds(t, toks))
}

// TestTokenize_InterpolationBoundary matches the documented worked example:
// a double-quoted string whose very first byte is the interpolation
// trigger produces an empty leading StringPart, followed by a chained
// variable/property/subscript sequence.
func TestTokenize_InterpolationBoundary(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php $a = "$b->c[0]";`))
	require.Nil(t, err)

	kinds := tokenKinds(t, toks)
	assert.Equal(t, []TokenKind{
		OpenTagFull, Variable, Assign,
		StringPart, Variable, Arrow, Identifier, LeftBracket, LiteralInteger, RightBracket,
		DoubleQuote, Semicolon, EOF,
	}, kinds)

	var stringPart *Token
	for i := range toks {
		if toks[i].Kind == StringPart {
			stringPart = &toks[i]
			break
		}
	}
	require.NotNil(t, stringPart)
	assert.Equal(t, "", stringPart.Value.String())
}

func TestTokenize_SimpleTemplateAndVariableInterpolation(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php $n = "hello $n!";`))
	require.Nil(t, err)

	kinds := tokenKinds(t, toks)
	assert.Equal(t, []TokenKind{
		OpenTagFull, Variable, Assign,
		StringPart, Variable, StringPart,
		DoubleQuote, Semicolon, EOF,
	}, kinds)
	assert.Equal(t, "hello ", toks[3].Value.String())
	assert.Equal(t, "!", toks[5].Value.String())
}

func TestTokenize_NumberOverflowPromotesToFloat(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php 99999999999999999999;`))
	require.Nil(t, err)
	require.Equal(t, LiteralFloat, toks[1].Kind)
	assert.InDelta(t, 1e20, toks[1].Float, 1e14)
}

func TestTokenize_InvalidLegacyOctal(t *testing.T) {
	_, err := New().Tokenize([]byte(`<?php 0778;`))
	require.NotNil(t, err)
	assert.Equal(t, InvalidOctalLiteral, err.Kind)
}

// TestTokenize_InvalidLegacyOctalShortForm matches spec.md §8 boundary
// scenario 3 exactly.
func TestTokenize_InvalidLegacyOctalShortForm(t *testing.T) {
	_, err := New().Tokenize([]byte(`<?php 09;`))
	require.NotNil(t, err)
	assert.Equal(t, InvalidOctalLiteral, err.Kind)
	assert.Equal(t, 1, err.Span.Line)
	assert.Equal(t, 7, err.Span.Column)
}

func TestTokenize_HexAndBinaryLiterals(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php 0x1F; 0b101; 0o17;`))
	require.Nil(t, err)
	require.Len(t, toks, 8)
	assert.Equal(t, int64(31), toks[1].Int)
	assert.Equal(t, int64(5), toks[3].Int)
	assert.Equal(t, int64(15), toks[5].Int)
}

func TestTokenize_UnderscoreSeparatedLiteral(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php 1_000_000;`))
	require.Nil(t, err)
	assert.Equal(t, int64(1000000), toks[1].Int)
}

func TestTokenize_ModeSwitchBackToTemplate(t *testing.T) {
	toks, err := New().Tokenize([]byte("<?php echo 1; ?>plain text<?php echo 2;"))
	require.Nil(t, err)

	assert.Equal(t, []TokenKind{
		OpenTagFull, KwEcho, LiteralInteger, Semicolon, CloseTag,
		InlineTemplate, OpenTagFull, KwEcho, LiteralInteger, Semicolon, EOF,
	}, tokenKinds(t, toks))
}

func TestTokenize_HaltCompilerEntersHaltedMode(t *testing.T) {
	toks, err := New().Tokenize([]byte("<?php __halt_compiler(); rest of the file is data"))
	require.Nil(t, err)

	// lexHaltCompiler consumes the trailing "();" itself, so no
	// parenthesis or semicolon tokens follow the keyword.
	require.Len(t, toks, 4)
	assert.Equal(t, KwHaltCompiler, toks[1].Kind)
	assert.Equal(t, InlineTemplate, toks[2].Kind)
	assert.Equal(t, " rest of the file is data", toks[2].Value.String())
	assert.Equal(t, EOF, toks[3].Kind)
}

func TestTokenize_UnterminatedStringIsFatal(t *testing.T) {
	_, err := New().Tokenize([]byte(`<?php $x = "unterminated`))
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedEndOfFile, err.Kind)
}

func TestTokenize_KeywordsAreExactCase(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php CLASS $x;`))
	require.Nil(t, err)
	// "CLASS" is not a recognized spelling of the keyword (only "class" is),
	// so it lexes as a plain identifier.
	assert.Equal(t, Identifier, toks[1].Kind)
}

func TestTokenize_TrueFalseNullCaseInsensitiveExceptions(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php TRUE; FALSE; NULL;`))
	require.Nil(t, err)
	assert.Equal(t, KwTrue, toks[1].Kind)
	assert.Equal(t, KwFalse, toks[3].Kind)
	assert.Equal(t, KwNull, toks[5].Kind)
}

func TestTokenize_QualifiedAndFullyQualifiedIdentifiers(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php App\Models\User; \Fully\Qualified;`))
	require.Nil(t, err)
	assert.Equal(t, QualifiedIdentifier, toks[1].Kind)
	assert.Equal(t, `App\Models\User`, toks[1].Value.String())
	assert.Equal(t, FullyQualifiedIdentifier, toks[3].Kind)
}

func TestTokenize_AttributeStart(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php #[Attr] class C {}`))
	require.Nil(t, err)
	assert.Equal(t, AttributeStart, toks[1].Kind)
}

func TestTokenize_LoneCarriageReturnDoesNotResetColumn(t *testing.T) {
	toks, err := New().Tokenize([]byte("<?php $a\r$b;"))
	require.Nil(t, err)
	// Column keeps advancing through the lone '\r' — only '\n' resets it.
	require.True(t, toks[2].Span.Column > toks[1].Span.Column)
}

func TestTokenize_Heredoc(t *testing.T) {
	input := "<?php $x = <<<EOT\nhello $name\nEOT;\n"
	toks, err := New().Tokenize([]byte(input))
	require.Nil(t, err)

	kinds := tokenKinds(t, toks)
	assert.Equal(t, []TokenKind{
		OpenTagFull, Variable, Assign, StartHeredoc,
		StringPart, Variable,
		EndHeredoc, Semicolon, EOF,
	}, kinds)
}

func TestTokenize_HeredocIndentationStripped(t *testing.T) {
	input := "<?php $x = <<<EOT\n    line one\n    line two\n    EOT;\n"
	toks, err := New().Tokenize([]byte(input))
	require.Nil(t, err)

	var body string
	for _, tok := range toks {
		if tok.Kind == StringPart {
			body += tok.Value.String()
		}
	}
	assert.Equal(t, "line one\nline two", body)
}

func TestTokenize_HeredocBadIndentationIsFatal(t *testing.T) {
	input := "<?php $x = <<<EOT\n    line one\n  line two\n    EOT;\n"
	_, err := New().Tokenize([]byte(input))
	require.NotNil(t, err)
	assert.Equal(t, InvalidDocBodyIndentationLevel, err.Kind)
}

func TestTokenize_Nowdoc(t *testing.T) {
	input := "<?php $x = <<<'EOT'\nraw $not_interpolated\nEOT;\n"
	toks, err := New().Tokenize([]byte(input))
	require.Nil(t, err)

	kinds := tokenKinds(t, toks)
	assert.Equal(t, []TokenKind{
		OpenTagFull, Variable, Assign, StartHeredoc, StringPart, EndHeredoc, Semicolon, EOF,
	}, kinds)
	assert.Equal(t, "raw $not_interpolated", toks[4].Value.String())
}

func TestTokenize_SingleQuotedEscapes(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php 'it\'s a \\test';`))
	require.Nil(t, err)
	assert.Equal(t, `it's a \test`, toks[1].Value.String())
}

func TestTokenize_DoubleQuotedEscapes(t *testing.T) {
	toks, err := New().Tokenize([]byte(`<?php "a\nb\tc\x41\u{1F600}";`))
	require.Nil(t, err)
	require.Equal(t, ConstantString, toks[1].Kind)
	assert.Contains(t, toks[1].Value.String(), "A")
}

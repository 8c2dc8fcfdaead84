package parser

import "github.com/wudi/phlex/lexer"

// Assoc is the associativity of a binary/postfix operator for the
// precedence-climbing expression parser (spec.md §4.8).
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// precLevel is the numeric binding power of one operator; a higher
// number binds tighter, mirroring PHP's documented operator-precedence
// table collapsed onto a single climbing scale.
type precLevel struct {
	prec  int
	assoc Assoc
}

// infixPrecedence maps every binary/ternary/assignment operator token to
// its precedence level. Tokens absent from this table are not valid
// infix/postfix operators and terminate the climbing loop.
var infixPrecedence = map[lexer.TokenKind]precLevel{
	lexer.KwOr:  {1, AssocLeft},
	lexer.KwXor: {2, AssocLeft},
	lexer.KwAnd: {3, AssocLeft},

	lexer.Assign:        {4, AssocRight},
	lexer.PlusEqual:     {4, AssocRight},
	lexer.MinusEqual:    {4, AssocRight},
	lexer.StarEqual:     {4, AssocRight},
	lexer.SlashEqual:    {4, AssocRight},
	lexer.DotEqual:      {4, AssocRight},
	lexer.PercentEqual:  {4, AssocRight},
	lexer.PowEqual:      {4, AssocRight},
	lexer.AmpEqual:      {4, AssocRight},
	lexer.PipeEqual:     {4, AssocRight},
	lexer.CaretEqual:    {4, AssocRight},
	lexer.ShlEqual:      {4, AssocRight},
	lexer.ShrEqual:      {4, AssocRight},
	lexer.CoalesceEqual: {4, AssocRight},

	lexer.Question:     {5, AssocNone}, // ternary cond ? then : else
	lexer.ShortTernary: {5, AssocNone}, // cond ?: else
	lexer.Coalesce:     {6, AssocRight},

	lexer.BoolOr: {7, AssocLeft},

	lexer.BoolAnd: {8, AssocLeft},

	lexer.Pipe: {9, AssocLeft},

	lexer.Caret: {10, AssocLeft},

	lexer.Amp: {11, AssocLeft},

	lexer.Equal:        {12, AssocNone},
	lexer.Identical:    {12, AssocNone},
	lexer.NotEqual:     {12, AssocNone},
	lexer.AltNotEqual:  {12, AssocNone},
	lexer.NotIdentical: {12, AssocNone},
	lexer.Spaceship:    {12, AssocNone},

	lexer.Less:         {13, AssocNone},
	lexer.Greater:      {13, AssocNone},
	lexer.LessEqual:    {13, AssocNone},
	lexer.GreaterEqual: {13, AssocNone},

	lexer.Shl: {14, AssocLeft},
	lexer.Shr: {14, AssocLeft},

	lexer.Plus:  {15, AssocLeft},
	lexer.Minus: {15, AssocLeft},
	lexer.Dot:   {15, AssocLeft},

	lexer.Star:    {16, AssocLeft},
	lexer.Slash:   {16, AssocLeft},
	lexer.Percent: {16, AssocLeft},

	lexer.KwInstanceof: {18, AssocNone},

	lexer.Pow: {20, AssocRight},
}

// postfixTokens covers the postfix-chain operators (member/static
// access, subscript, call) that bind tighter than every infix operator
// and are handled by a dedicated loop rather than the generic climbing
// table, but are listed here so callers can ask "does this token start a
// postfix continuation" uniformly.
var postfixTokens = map[lexer.TokenKind]bool{
	lexer.Arrow:          true,
	lexer.QuestionArrow:  true,
	lexer.DoubleColon:    true,
	lexer.LeftBracket:    true,
	lexer.LeftBrace:      true, // legacy `$s{0}` offset, rejected explicitly where unsupported
	lexer.LeftParen:      true,
	lexer.Increment:      true,
	lexer.Decrement:      true,
}

const lowestPrecedence = 0

func lookupInfix(kind lexer.TokenKind) (precLevel, bool) {
	lvl, ok := infixPrecedence[kind]
	return lvl, ok
}

package parser

import "github.com/wudi/phlex/lexer"

// TokenStream is a random-access view over the lexer's raw output
// (spec.md §4.4). It transparently hides comment tokens from ordinary
// navigation — the cursor never rests on one — while keeping them
// available on demand via Comments, so a node wanting to attach a
// preceding doc-comment can still find it.
type TokenStream struct {
	tokens  []lexer.Token
	pos     int
	pending []lexer.Token
}

func isCommentKind(k lexer.TokenKind) bool {
	switch k {
	case lexer.CommentLine, lexer.CommentHash, lexer.CommentBlock, lexer.CommentDoc:
		return true
	default:
		return false
	}
}

// NewTokenStream wraps a fully-lexed token slice (as produced by
// lexer.Lexer.Tokenize). tokens must end with an EOF token.
func NewTokenStream(tokens []lexer.Token) *TokenStream {
	ts := &TokenStream{tokens: tokens}
	ts.land()
	return ts
}

// land advances pos past any run of comment tokens, collecting them into
// pending, until it rests on a non-comment token or the final EOF.
func (ts *TokenStream) land() {
	for ts.pos < len(ts.tokens)-1 && isCommentKind(ts.tokens[ts.pos].Kind) {
		ts.pending = append(ts.pending, ts.tokens[ts.pos])
		ts.pos++
	}
}

// Current returns the token at the cursor.
func (ts *TokenStream) Current() lexer.Token {
	return ts.tokens[ts.pos]
}

// Peek returns the next non-comment token after the cursor, without
// consuming it. Equivalent to Lookahead(0).
func (ts *TokenStream) Peek() lexer.Token {
	return ts.Lookahead(0)
}

// Lookahead returns the (n+1)th non-comment token ahead of the cursor;
// Lookahead(0) is the same as Peek.
func (ts *TokenStream) Lookahead(n int) lexer.Token {
	idx := ts.pos
	seen := -1
	for {
		idx++
		if idx >= len(ts.tokens) {
			return ts.tokens[len(ts.tokens)-1]
		}
		if isCommentKind(ts.tokens[idx].Kind) {
			continue
		}
		seen++
		if seen == n {
			return ts.tokens[idx]
		}
	}
}

// Next returns the current token and advances the cursor one non-comment
// token forward, collecting any comments stepped over along the way.
func (ts *TokenStream) Next() lexer.Token {
	tok := ts.Current()
	if ts.pos < len(ts.tokens)-1 {
		ts.pos++
		ts.land()
	}
	return tok
}

// IsEOF reports whether the cursor is resting on the EOF token.
func (ts *TokenStream) IsEOF() bool {
	return ts.Current().Kind == lexer.EOF
}

// Comments drains and returns every comment token collected by Next calls
// since the last drain.
func (ts *TokenStream) Comments() []lexer.Token {
	c := ts.pending
	ts.pending = nil
	return c
}

// mark captures the cursor so a tentative parse (e.g. disambiguating a
// typed classish constant from an untyped one) can be undone with reset.
func (ts *TokenStream) mark() (int, []lexer.Token) {
	return ts.pos, append([]lexer.Token(nil), ts.pending...)
}

func (ts *TokenStream) reset(pos int, pending []lexer.Token) {
	ts.pos = pos
	ts.pending = pending
}

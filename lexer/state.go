package lexer

import "github.com/wudi/phlex/internal/bytesource"

// stringCtxKind distinguishes what an InDoubleQuotedString frame is
// actually scanning towards: a closing quote or a closing backtick.
// Heredoc bodies are scanned eagerly by lexHeredocStart and never enter
// this mode, since their closing-label indentation can only be resolved
// once the whole body has been collected.
type stringCtxKind int

const (
	ctxDoubleQuote stringCtxKind = iota
	ctxBacktick
)

// stringCtx records enough about an open interpolated-string region for
// the InDoubleQuotedString mode to know how to find its terminator.
type stringCtx struct {
	kind stringCtxKind
}

// state wraps a ByteSource with the pushdown mode stack and the
// comment-accumulation buffer the lexer needs across calls. It is the Go
// analogue of LexerState in spec.md §4.2.
type state struct {
	src             *bytesource.Source
	modes           *modeStack
	pendingComments []Token

	// pendingTokens holds tokens already produced but not yet handed back
	// to Tokenize's caller — used by heredoc scanning, which resolves an
	// entire body (including nested interpolation) in one call and needs
	// to emit more than one token before the main loop runs again.
	pendingTokens []Token

	stringCtxStack []stringCtx

	// lastSegmentInterp records whether the double-quoted segment just
	// produced ended on an interpolation trigger (as opposed to literal
	// text running into the terminator). lexDoubleQuote uses it to decide
	// whether an empty trailing segment deserves a StringPart: the spec's
	// worked example wants the empty StringPart that leads into an
	// interpolation, but not one trailing straight out of it.
	lastSegmentInterp bool
}

func (s *state) queueTokens(toks []Token) {
	s.pendingTokens = append(s.pendingTokens, toks...)
}

func (s *state) nextPending() (Token, bool) {
	if len(s.pendingTokens) == 0 {
		return Token{}, false
	}
	t := s.pendingTokens[0]
	s.pendingTokens = s.pendingTokens[1:]
	return t, true
}

func (s *state) pushStringCtx(c stringCtx) {
	s.stringCtxStack = append(s.stringCtxStack, c)
}

func (s *state) currentStringCtx() (stringCtx, bool) {
	if len(s.stringCtxStack) == 0 {
		return stringCtx{}, false
	}
	return s.stringCtxStack[len(s.stringCtxStack)-1], true
}

func (s *state) popStringCtx() {
	if len(s.stringCtxStack) == 0 {
		return
	}
	s.stringCtxStack = s.stringCtxStack[:len(s.stringCtxStack)-1]
}

func newState(input []byte) *state {
	src := bytesource.New(input)
	src.SkipShebang()
	return &state{
		src:   src,
		modes: newModeStack(),
	}
}

func (s *state) span() Span {
	l, c := s.src.Span()
	return Span{Line: l, Column: c}
}

// top returns the current mode, or an UnpredictableState error if the
// pushdown stack has been corrupted (which should never happen outside a
// lexer bug).
func (s *state) top() (Mode, *SyntaxError) {
	m, ok := s.modes.top()
	if !ok {
		return 0, &SyntaxError{Kind: UnpredictableState, Span: s.span()}
	}
	return m, nil
}

func (s *state) enter(m Mode) { s.modes.enter(m) }
func (s *state) push(m Mode)  { s.modes.push(m) }
func (s *state) pop() Mode    { return s.modes.pop() }

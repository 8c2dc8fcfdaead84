// Package lexer implements the mode-switching byte-level lexer described in
// spec.md §4.3: a pushdown stack of lex modes lets a single dispatch point
// emit different token classes depending on context (template vs. code vs.
// interpolated-string vs. string-offset).
package lexer

// Lexer drives the mode-stack state machine until EOF or a fatal
// SyntaxError. It never recovers from an error — Tokenize returns the
// first one it hits.
type Lexer struct{}

// New returns a Lexer. The type carries no state of its own; all mutable
// state lives in the per-call `state` value, which is what makes
// concurrent, independent Tokenize calls safe (spec.md §5).
func New() *Lexer {
	return &Lexer{}
}

// Tokenize consumes input in full and returns its token stream, or the
// first SyntaxError encountered. The returned slice always ends with an
// EOF token whose span is greater than or equal to every other token's
// span.
func (lx *Lexer) Tokenize(input []byte) ([]Token, *SyntaxError) {
	s := newState(input)
	var tokens []Token

	for {
		if tok, ok := s.nextPending(); ok {
			tokens = append(tokens, tok)
			continue
		}

		mode, err := s.top()
		if err != nil {
			return nil, err
		}

		if _, ok := s.src.Current(); !ok && mode != Halted {
			break
		}

		switch mode {
		case Initial:
			toks, err := lx.lexInitial(s)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, toks...)

		case Scripting:
			lx.skipWhitespace(s)
			if _, ok := s.src.Current(); !ok {
				continue
			}
			tok, err := lx.lexScripting(s)
			if err != nil {
				return nil, err
			}
			if tok != nil {
				tokens = append(tokens, *tok)
			}

		case Halted:
			tokens = append(tokens, Token{
				Kind:  InlineTemplate,
				Value: ByteString(s.src.Remaining()),
				Span:  s.span(),
			})
			s.src.Skip(len(s.src.Remaining()))
			goto done

		case InDoubleQuotedString:
			toks, err := lx.lexDoubleQuote(s)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, toks...)

		case LookingForVarname:
			tok := lx.lexLookingForVarname(s)
			if tok != nil {
				tokens = append(tokens, *tok)
			}

		case VarOffset:
			if _, ok := s.src.Current(); !ok {
				goto done
			}
			tok, err := lx.lexVarOffset(s)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, *tok)

		case LookingForProperty:
			tok, err := lx.lexLookingForProperty(s)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, *tok)
		}
	}

done:
	eofSpan := s.span()
	tokens = append(tokens, Token{Kind: EOF, Span: eofSpan})
	return tokens, nil
}

func (lx *Lexer) skipWhitespace(s *state) {
	for {
		c, ok := s.src.Current()
		if !ok {
			return
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			s.src.Advance()
		default:
			return
		}
	}
}

// lexInitial scans template text until "<?php", "<?=", or a bare "<?" is
// found. Bytes before the tag accumulate into one InlineTemplate token
// carrying the block's start span.
func (lx *Lexer) lexInitial(s *state) ([]Token, *SyntaxError) {
	start := s.span()
	var buf []byte

	for {
		c, ok := s.src.Current()
		if !ok {
			break
		}
		if c == '<' {
			if s.src.StartsWithFold([]byte("<?php")) {
				next, hasNext := s.src.PeekByte(5)
				// require a tag-terminating byte (whitespace or EOF) after
				// "<?php" so "<?phpx" is not mistaken for the full open tag.
				if !hasNext || isWhitespace(next) {
					return lx.emitOpenTag(s, start, buf, 5, OpenTagFull)
				}
			}
			if s.src.StartsWith([]byte("<?=")) {
				return lx.emitOpenTag(s, start, buf, 3, OpenTagEcho)
			}
			if s.src.StartsWith([]byte("<?")) {
				return lx.emitOpenTag(s, start, buf, 2, OpenTagShort)
			}
		}
		buf = append(buf, c)
		s.src.Advance()
	}

	if len(buf) == 0 {
		return nil, nil
	}
	return []Token{{Kind: InlineTemplate, Value: ByteString(buf), Span: start}}, nil
}

func (lx *Lexer) emitOpenTag(s *state, inlineSpan Span, buf []byte, tagLen int, kind TokenKind) ([]Token, *SyntaxError) {
	tagSpan := s.span()
	s.src.Skip(tagLen)
	s.enter(Scripting)

	var out []Token
	if len(buf) > 0 {
		out = append(out, Token{Kind: InlineTemplate, Value: ByteString(buf), Span: inlineSpan})
	}
	out = append(out, Token{Kind: kind, Span: tagSpan})
	return out, nil
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

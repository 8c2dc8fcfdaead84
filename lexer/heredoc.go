package lexer

import (
	"bytes"

	"github.com/wudi/phlex/internal/bytesource"
)

// lexHeredocStart scans a "<<<LABEL" / "<<<'LABEL'" / `<<<"LABEL"`
// introducer and, unlike every other construct in this lexer, resolves
// the entire body in one call: the indentation every line must be
// stripped of is only known once the closing label line is reached, so
// the body can't be handed back to the main loop one segment at a time
// the way ordinary double-quoted strings are. The StartHeredoc token is
// returned directly; the body tokens and the trailing EndHeredoc token
// are queued on state and drained by Tokenize on the following
// iterations.
func (lx *Lexer) lexHeredocStart(s *state, span Span) (*Token, *SyntaxError) {
	s.src.Skip(3) // "<<<"
	skipHorizontalSpace(s)

	isNowdoc := false
	var quote byte
	if c, ok := s.src.Current(); ok && (c == '\'' || c == '"') {
		quote = c
		isNowdoc = c == '\''
		s.src.Advance()
	}

	if c, ok := s.src.Current(); !ok || !isIdentStart(c) {
		return nil, &SyntaxError{Kind: UnexpectedCharacter, Char: c, Span: s.span()}
	}
	label := lx.scanIdentPart(s)

	if quote != 0 {
		if c, ok := s.src.Current(); !ok || c != quote {
			return nil, &SyntaxError{Kind: UnexpectedCharacter, Char: c, Span: s.span()}
		}
		s.src.Advance()
	}

	if c, ok := s.src.Current(); ok && c == '\r' {
		s.src.Advance()
	}
	if c, ok := s.src.Current(); !ok || c != '\n' {
		return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
	}
	s.src.Advance()

	rawBody, indentBytes, err := scanHeredocBody(s, label)
	if err != nil {
		return nil, err
	}

	dedented, err := dedentHeredocBody(rawBody, indentBytes, span)
	if err != nil {
		return nil, err
	}

	var bodyTokens []Token
	if len(dedented) > 0 {
		if isNowdoc {
			bodyTokens = []Token{{Kind: StringPart, Value: ByteString(dedented), Span: span}}
		} else {
			bodyTokens, err = lx.lexHeredocBodyCore(dedented)
			if err != nil {
				return nil, err
			}
		}
	}

	endSpan := s.span()
	s.queueTokens(bodyTokens)
	s.queueTokens([]Token{{Kind: EndHeredoc, Value: ByteString(label), Span: endSpan}})

	return &Token{Kind: StartHeredoc, Value: ByteString(label), Span: span}, nil
}

func skipHorizontalSpace(s *state) {
	for {
		c, ok := s.src.Current()
		if !ok || (c != ' ' && c != '\t') {
			return
		}
		s.src.Advance()
	}
}

// scanHeredocBody consumes lines from s.src up to (and including) the
// closing label line, returning the raw body bytes (everything before the
// closing line's indentation, with the single line break that precedes it
// stripped) and the exact indentation bytes found before the label.
func scanHeredocBody(s *state, label []byte) (rawBody, indentBytes []byte, _ *SyntaxError) {
	for {
		wsLen := 0
		for {
			b, ok := s.src.PeekByte(wsLen)
			if !ok || (b != ' ' && b != '\t') {
				break
			}
			wsLen++
		}

		matches := true
		for i, lb := range label {
			b, ok := s.src.PeekByte(wsLen + i)
			if !ok || b != lb {
				matches = false
				break
			}
		}
		if matches {
			after, hasAfter := s.src.PeekByte(wsLen + len(label))
			if !hasAfter || !isIdentPart(after) {
				indentBytes = append([]byte(nil), s.src.Peek(0, wsLen)...)
				s.src.Skip(wsLen + len(label))
				rawBody = bytes.TrimSuffix(rawBody, []byte("\r\n"))
				rawBody = bytes.TrimSuffix(rawBody, []byte("\n"))
				return rawBody, indentBytes, nil
			}
		}

		for {
			c, ok := s.src.Current()
			if !ok {
				return nil, nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
			}
			rawBody = append(rawBody, c)
			s.src.Advance()
			if c == '\n' {
				break
			}
		}
	}
}

// dedentHeredocBody strips the closing label's indentation from every line
// of the body, honoring the rule that a whitespace-only line shorter than
// the indentation is allowed; such a line becomes empty.
func dedentHeredocBody(rawBody, indentBytes []byte, span Span) ([]byte, *SyntaxError) {
	if len(indentBytes) == 0 {
		return rawBody, nil
	}

	indentByte := indentBytes[0]
	for _, b := range indentBytes {
		if b != indentByte {
			return nil, &SyntaxError{Kind: InvalidDocIndentation, Span: span}
		}
	}
	indentLen := len(indentBytes)

	lines := bytes.Split(rawBody, []byte("\n"))
	for i, line := range lines {
		if len(line) >= indentLen {
			for _, b := range line[:indentLen] {
				if b != indentByte {
					return nil, &SyntaxError{Kind: InvalidDocBodyIndentationLevel, Span: span, Amount: indentLen}
				}
			}
			lines[i] = line[indentLen:]
			continue
		}
		for _, b := range line {
			if b != indentByte {
				return nil, &SyntaxError{Kind: InvalidDocBodyIndentationLevel, Span: span, Amount: indentLen}
			}
		}
		lines[i] = nil
	}

	return bytes.Join(lines, []byte("\n")), nil
}

// lexHeredocBodyCore tokenizes an already-dedented heredoc body, which is
// scanned independently of the enclosing source: interpolation triggers
// push modes onto a throwaway mode stack rooted at this call, drained by
// drainNested before the top-level scan resumes.
func (lx *Lexer) lexHeredocBodyCore(dedented []byte) ([]Token, *SyntaxError) {
	tempState := &state{src: bytesource.New(dedented), modes: newModeStack()}
	baseDepth := tempState.modes.depth()

	var tokens []Token
	var buf []byte
	span := tempState.span()

	flush := func() {
		if len(buf) > 0 {
			tokens = append(tokens, Token{Kind: StringPart, Value: ByteString(buf), Span: span})
			buf = nil
		}
	}

	for {
		c, ok := tempState.src.Current()
		if !ok {
			flush()
			return tokens, nil
		}

		if c == '$' {
			if n, has := tempState.src.PeekByte(1); has && n == '{' {
				flush()
				tempState.src.Skip(2)
				tempState.push(LookingForVarname)
				tokens = append(tokens, Token{Kind: DollarLeftBrace, Span: tempState.span()})
				nested, err := lx.drainNested(tempState, baseDepth)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, nested...)
				span = tempState.span()
				continue
			}
			if n, has := tempState.src.PeekByte(1); has && isIdentStart(n) {
				flush()
				varSpan := tempState.span()
				tempState.src.Advance()
				name := lx.scanIdentPart(tempState)
				tokens = append(tokens, Token{Kind: Variable, Value: ByteString(name), Span: varSpan})

				if n2, has2 := tempState.src.Current(); has2 && n2 == '[' {
					tempState.push(VarOffset)
					nested, err := lx.drainNested(tempState, baseDepth)
					if err != nil {
						return nil, err
					}
					tokens = append(tokens, nested...)
				} else if tempState.src.StartsWith([]byte("->")) || tempState.src.StartsWith([]byte("?->")) {
					tempState.push(LookingForProperty)
					nested, err := lx.drainNested(tempState, baseDepth)
					if err != nil {
						return nil, err
					}
					tokens = append(tokens, nested...)
				}
				span = tempState.span()
				continue
			}
		}

		if c == '{' {
			if n, has := tempState.src.PeekByte(1); has && n == '$' {
				flush()
				tempState.src.Advance()
				tempState.push(Scripting)
				tokens = append(tokens, Token{Kind: LeftBrace, Span: tempState.span()})
				nested, err := lx.drainNested(tempState, baseDepth)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, nested...)
				span = tempState.span()
				continue
			}
		}

		if c == '\\' {
			decoded, err := lx.decodeEscape(tempState)
			if err != nil {
				return nil, err
			}
			buf = append(buf, decoded...)
			continue
		}

		buf = append(buf, c)
		tempState.src.Advance()
	}
}

// drainNested runs the mode dispatch loop used by Tokenize, but bounded to
// a single nested construct: it stops as soon as the mode stack unwinds
// back to baseDepth. Used for interpolation forms (${name}, {$expr},
// $v->p, $v[0]) that can themselves contain arbitrarily nested expressions
// (including further strings), reusing the same per-mode scanners Tokenize
// uses at the top level.
func (lx *Lexer) drainNested(s *state, baseDepth int) ([]Token, *SyntaxError) {
	var tokens []Token
	for {
		if tok, ok := s.nextPending(); ok {
			tokens = append(tokens, tok)
			continue
		}

		if s.modes.depth() <= baseDepth {
			return tokens, nil
		}

		mode, err := s.top()
		if err != nil {
			return nil, err
		}

		switch mode {
		case Scripting:
			lx.skipWhitespace(s)
			if _, ok := s.src.Current(); !ok {
				return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
			}
			tok, err := lx.lexScripting(s)
			if err != nil {
				return nil, err
			}
			if tok != nil {
				tokens = append(tokens, *tok)
			}

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
				return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
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

		default:
			return nil, &SyntaxError{Kind: UnpredictableState, Span: s.span()}
		}
	}
}

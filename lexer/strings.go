package lexer

import (
	"strconv"
	"unicode/utf8"
)

// lexSingleQuoted scans a single-quoted string. Only \' and \\ are
// recognized escapes; every other backslash is kept literal.
func (lx *Lexer) lexSingleQuoted(s *state, span Span) (*Token, *SyntaxError) {
	s.src.Advance() // opening '
	var buf []byte
	for {
		c, ok := s.src.Current()
		if !ok {
			return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
		}
		if c == '\\' {
			if n, hasNext := s.src.PeekByte(1); hasNext && (n == '\'' || n == '\\') {
				buf = append(buf, n)
				s.src.Skip(2)
				continue
			}
			buf = append(buf, c)
			s.src.Advance()
			continue
		}
		if c == '\'' {
			s.src.Advance()
			return &Token{Kind: ConstantString, Value: ByteString(buf), Span: span}, nil
		}
		buf = append(buf, c)
		s.src.Advance()
	}
}

// lexDoubleQuotedStart handles the opening '"' (or a b"..."/B"..." prefix,
// already stripped by the caller) encountered in Scripting mode. If the
// string contains no interpolation it is decoded in one pass and emitted
// as ConstantString; otherwise the opening quote is consumed, the lexer
// pushes InDoubleQuotedString, and the first segment is produced by the
// next main-loop iteration.
func (lx *Lexer) lexDoubleQuotedStart(s *state, span Span) (*Token, *SyntaxError) {
	s.src.Advance() // opening "

	if !stringNeedsInterpolation(s, '"') {
		buf, err := lx.decodeUntil(s, '"')
		if err != nil {
			return nil, err
		}
		s.src.Advance() // closing "
		return &Token{Kind: ConstantString, Value: ByteString(buf), Span: span}, nil
	}

	s.push(InDoubleQuotedString)
	s.pushStringCtx(stringCtx{kind: ctxDoubleQuote})
	// The actual first segment (possibly empty, as when the trigger is the
	// very first byte) is produced by lexDoubleQuote on the next
	// iteration — emitting nothing here avoids a spurious empty StringPart
	// ahead of real leading text.
	return nil, nil
}

// stringNeedsInterpolation scans ahead (without mutating the cursor more
// than a bookmark-and-restore) to decide whether any interpolation trigger
// appears before the terminator byte.
func stringNeedsInterpolation(s *state, terminator byte) bool {
	for i := 0; ; i++ {
		c, ok := s.src.PeekByte(i)
		if !ok {
			return false
		}
		if c == '\\' {
			i++
			continue
		}
		if c == terminator {
			return false
		}
		if c == '$' {
			if n, has := s.src.PeekByte(i + 1); has && (n == '{' || isIdentStart(n)) {
				return true
			}
		}
		if c == '{' {
			if n, has := s.src.PeekByte(i + 1); has && n == '$' {
				return true
			}
		}
	}
}

// decodeUntil consumes bytes up to (not including) the terminator,
// decoding escape sequences, and returns the decoded content.
func (lx *Lexer) decodeUntil(s *state, terminator byte) ([]byte, *SyntaxError) {
	var buf []byte
	for {
		c, ok := s.src.Current()
		if !ok {
			return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
		}
		if c == terminator {
			return buf, nil
		}
		if c == '\\' {
			decoded, err := lx.decodeEscape(s)
			if err != nil {
				return nil, err
			}
			buf = append(buf, decoded...)
			continue
		}
		buf = append(buf, c)
		s.src.Advance()
	}
}

// decodeEscape decodes one backslash escape sequence starting at the
// cursor (which is positioned on the '\'): \n \r \t \v \e \f \\ \$ \" plus
// \xHH, \u{HHHH...}, and \0..\377 octal. Any other escaped byte is kept as
// a literal backslash followed by that byte.
func (lx *Lexer) decodeEscape(s *state) ([]byte, *SyntaxError) {
	start := s.span()
	s.src.Advance() // consume '\'
	c, ok := s.src.Current()
	if !ok {
		return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
	}

	switch c {
	case 'n':
		s.src.Advance()
		return []byte{'\n'}, nil
	case 'r':
		s.src.Advance()
		return []byte{'\r'}, nil
	case 't':
		s.src.Advance()
		return []byte{'\t'}, nil
	case 'v':
		s.src.Advance()
		return []byte{'\v'}, nil
	case 'e':
		s.src.Advance()
		return []byte{0x1b}, nil
	case 'f':
		s.src.Advance()
		return []byte{'\f'}, nil
	case '\\':
		s.src.Advance()
		return []byte{'\\'}, nil
	case '$':
		s.src.Advance()
		return []byte{'$'}, nil
	case '"':
		s.src.Advance()
		return []byte{'"'}, nil
	case 'x':
		return lx.decodeHexEscape(s)
	case 'u':
		if n, has := s.src.PeekByte(1); has && n == '{' {
			return lx.decodeUnicodeEscape(s, start)
		}
		s.src.Advance()
		return []byte{'\\', 'u'}, nil
	default:
		if c >= '0' && c <= '7' {
			return lx.decodeOctalEscape(s, start)
		}
		s.src.Advance()
		return []byte{'\\', c}, nil
	}
}

func (lx *Lexer) decodeHexEscape(s *state) ([]byte, *SyntaxError) {
	s.src.Advance() // 'x'
	var digits []byte
	for len(digits) < 2 {
		c, ok := s.src.Current()
		if !ok || !isHexDigit(c) {
			break
		}
		digits = append(digits, c)
		s.src.Advance()
	}
	if len(digits) == 0 {
		return []byte{'\\', 'x'}, nil
	}
	v, _ := strconv.ParseUint(string(digits), 16, 8)
	return []byte{byte(v)}, nil
}

func (lx *Lexer) decodeOctalEscape(s *state, start Span) ([]byte, *SyntaxError) {
	var digits []byte
	for len(digits) < 3 {
		c, ok := s.src.Current()
		if !ok || c < '0' || c > '7' {
			break
		}
		digits = append(digits, c)
		s.src.Advance()
	}
	v, _ := strconv.ParseUint(string(digits), 8, 32)
	if v > 0xff {
		return nil, &SyntaxError{Kind: InvalidOctalEscape, Span: start}
	}
	return []byte{byte(v)}, nil
}

func (lx *Lexer) decodeUnicodeEscape(s *state, start Span) ([]byte, *SyntaxError) {
	s.src.Skip(2) // "u{"
	var digits []byte
	for {
		c, ok := s.src.Current()
		if !ok {
			return nil, &SyntaxError{Kind: InvalidUnicodeEscape, Span: start}
		}
		if c == '}' {
			s.src.Advance()
			break
		}
		if !isHexDigit(c) {
			return nil, &SyntaxError{Kind: InvalidUnicodeEscape, Span: start}
		}
		digits = append(digits, c)
		s.src.Advance()
	}
	if len(digits) == 0 {
		return nil, &SyntaxError{Kind: InvalidUnicodeEscape, Span: start}
	}
	v, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return nil, &SyntaxError{Kind: InvalidUnicodeEscape, Span: start}
	}
	out := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(out, rune(v))
	return out[:n], nil
}

// lexDoubleQuote scans exactly one segment while InDoubleQuotedString is
// on top of the mode stack: a run of literal bytes terminated by the
// context's closing delimiter, "${", "{$", or a bare "$ident".
func (lx *Lexer) lexDoubleQuote(s *state) ([]Token, *SyntaxError) {
	ctx, ok := s.currentStringCtx()
	if !ok {
		return nil, &SyntaxError{Kind: UnpredictableState, Span: s.span()}
	}

	terminator := byte('"')
	closeKind := DoubleQuote
	if ctx.kind == ctxBacktick {
		terminator = '`'
		closeKind = Backtick
	}

	afterInterp := s.lastSegmentInterp
	s.lastSegmentInterp = false

	span := s.span()
	var buf []byte
	for {
		c, ok := s.src.Current()
		if !ok {
			return nil, &SyntaxError{Kind: UnexpectedEndOfFile, Span: s.span()}
		}
		if c == terminator {
			s.src.Advance()
			s.pop()
			s.popStringCtx()
			var out []Token
			// A segment that is empty because it immediately follows an
			// interpolation (rather than because the string opened right
			// on the terminator) gets no StringPart: spec.md §8 scenario 1
			// ends ...RightBracket, DoubleQuote with nothing between.
			if len(buf) > 0 || !afterInterp {
				out = append(out, Token{Kind: StringPart, Value: ByteString(buf), Span: span})
			}
			out = append(out, Token{Kind: closeKind, Span: s.span()})
			return out, nil
		}
		if c == '$' && func() bool { n, has := s.src.PeekByte(1); return has && n == '{' }() {
			s.src.Skip(2)
			s.push(LookingForVarname)
			s.lastSegmentInterp = true
			var out []Token
			out = append(out, Token{Kind: StringPart, Value: ByteString(buf), Span: span})
			out = append(out, Token{Kind: DollarLeftBrace, Span: s.span()})
			return out, nil
		}
		if c == '{' && func() bool { n, has := s.src.PeekByte(1); return has && n == '$' }() {
			s.src.Advance() // only the '{'
			s.push(Scripting)
			s.lastSegmentInterp = true
			var out []Token
			out = append(out, Token{Kind: StringPart, Value: ByteString(buf), Span: span})
			out = append(out, Token{Kind: LeftBrace, Span: s.span()})
			return out, nil
		}
		if c == '$' && func() bool { n, has := s.src.PeekByte(1); return has && isIdentStart(n) }() {
			varSpan := s.span()
			s.src.Advance()
			name := lx.scanIdentPart(s)
			s.lastSegmentInterp = true
			out := []Token{
				{Kind: StringPart, Value: ByteString(buf), Span: span},
				{Kind: Variable, Value: ByteString(name), Span: varSpan},
			}

			if n, has := s.src.Current(); has && n == '[' {
				s.push(VarOffset)
			} else if s.src.StartsWith([]byte("->")) || s.src.StartsWith([]byte("?->")) {
				s.push(LookingForProperty)
			}
			return out, nil
		}
		if c == '\\' {
			decoded, err := lx.decodeEscape(s)
			if err != nil {
				return nil, err
			}
			buf = append(buf, decoded...)
			continue
		}
		buf = append(buf, c)
		s.src.Advance()
	}
}

// lexLookingForVarname handles the mode entered right after "${": if the
// next bytes form an identifier followed by '[' or '}', emit one
// Identifier token and transition to Scripting; otherwise emit nothing and
// transition to Scripting (the '$' was not a variable-name introducer).
func (lx *Lexer) lexLookingForVarname(s *state) *Token {
	span := s.span()
	c, ok := s.src.Current()
	if !ok || !isIdentStart(c) {
		s.pop()
		s.enter(Scripting)
		return nil
	}

	save := *s.src
	name := lx.scanIdentPart(s)
	n, has := s.src.Current()
	if has && (n == '[' || n == '}') {
		s.pop()
		s.enter(Scripting)
		return &Token{Kind: Identifier, Value: ByteString(name), Span: span}
	}

	*s.src = save
	s.pop()
	s.enter(Scripting)
	return nil
}

// lexLookingForProperty emits one token per call: Arrow or QuestionArrow
// (staying in this mode), then the property Identifier, after which it
// pops back to the enclosing frame, pushing VarOffset if a `[` follows.
func (lx *Lexer) lexLookingForProperty(s *state) (*Token, *SyntaxError) {
	span := s.span()
	if s.src.StartsWith([]byte("?->")) {
		s.src.Skip(3)
		return &Token{Kind: QuestionArrow, Span: span}, nil
	}
	if s.src.StartsWith([]byte("->")) {
		s.src.Skip(2)
		return &Token{Kind: Arrow, Span: span}, nil
	}
	c, ok := s.src.Current()
	if ok && isIdentStart(c) {
		name := lx.scanIdentPart(s)
		s.pop()
		if n, has := s.src.Current(); has && n == '[' {
			// Matches the chained property+subscript form demonstrated in
			// spec.md §8 scenario 1: a subscript directly following a
			// property fetch inside an interpolated string re-enters
			// VarOffset rather than falling back to literal text.
			s.push(VarOffset)
		}
		return &Token{Kind: Identifier, Value: ByteString(name), Span: span}, nil
	}
	s.pop()
	return nil, &SyntaxError{Kind: UnpredictableState, Span: span}
}

// lexVarOffset accepts "$ident" (Variable), a digit run (integer), the
// single bytes '[', '-', ']' (pop on ']'), or an identifier.
func (lx *Lexer) lexVarOffset(s *state) (*Token, *SyntaxError) {
	span := s.span()
	c, _ := s.src.Current()

	if c == '$' {
		if n, has := s.src.PeekByte(1); has && isIdentStart(n) {
			s.src.Advance()
			name := lx.scanIdentPart(s)
			return &Token{Kind: Variable, Value: ByteString(name), Span: span}, nil
		}
	}
	if isDigit(c) {
		digits := lx.scanDigitsWithSeparators(s, isDigit)
		v, _ := strconv.ParseInt(string(digits), 10, 64)
		return &Token{Kind: LiteralInteger, Value: ByteString(digits), Span: span, Int: v}, nil
	}
	switch c {
	case '[':
		s.src.Advance()
		return &Token{Kind: LeftBracket, Span: span}, nil
	case '-':
		s.src.Advance()
		return &Token{Kind: Minus, Span: span}, nil
	case ']':
		s.src.Advance()
		s.pop()
		return &Token{Kind: RightBracket, Span: span}, nil
	}
	if isIdentStart(c) {
		name := lx.scanIdentPart(s)
		return &Token{Kind: Identifier, Value: ByteString(name), Span: span}, nil
	}
	return nil, &SyntaxError{Kind: UnexpectedCharacter, Char: c, Span: span}
}


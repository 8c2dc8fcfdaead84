package lexer

import (
	"math/big"
	"strconv"
)

// lexNumber scans an integer or float literal. Base selection: a leading
// 0b/0B, 0o/0O, 0x/0X picks base 2/8/16 and parses digits only; a leading
// bare 0 selects legacy octal-or-float; anything else is decimal-or-float.
// Underscores between two digits of the same base are allowed and
// stripped. Integer overflow of int64 promotes to a float via big.Int
// widening; an invalid legacy octal digit (8 or 9) is a fatal error.
func (lx *Lexer) lexNumber(s *state, span Span) (*Token, *SyntaxError) {
	c, _ := s.src.Current()

	if c == '0' {
		if n, ok := s.src.PeekByte(1); ok {
			switch n {
			case 'b', 'B':
				return lx.lexRadixLiteral(s, span, 2, isBinDigit)
			case 'o', 'O':
				return lx.lexRadixLiteral(s, span, 8, isOctDigit)
			case 'x', 'X':
				return lx.lexRadixLiteral(s, span, 16, isHexDigit)
			}
		}
	}

	return lx.lexDecimalOrFloat(s, span)
}

func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (lx *Lexer) lexRadixLiteral(s *state, span Span, base int, isDigitFn func(byte) bool) (*Token, *SyntaxError) {
	s.src.Skip(2) // the "0x"/"0o"/"0b" prefix
	digits := lx.scanDigitsWithSeparators(s, isDigitFn)
	if len(digits) == 0 {
		return nil, &SyntaxError{Kind: InvalidOctalLiteral, Span: span}
	}
	return lx.finishInteger(span, digits, base)
}

// lexDecimalOrFloat handles decimal integers, legacy octal (leading 0),
// and floats (decimal point or exponent). The full literal text is
// accumulated into buf as it is scanned, so the float path never needs to
// re-derive it from the source after the fact.
func (lx *Lexer) lexDecimalOrFloat(s *state, span Span) (*Token, *SyntaxError) {
	startsWithZero := false
	if c, ok := s.src.Current(); ok && c == '0' {
		startsWithZero = true
	}

	var buf []byte
	intPart := lx.scanDigitsWithSeparators(s, isDigit)
	buf = append(buf, intPart...)
	isFloat := false

	if c, ok := s.src.Current(); ok && c == '.' {
		n, hasNext := s.src.PeekByte(1)
		if !hasNext || isDigit(n) || !isIdentStart(n) {
			isFloat = true
			buf = append(buf, '.')
			s.src.Advance()
			buf = append(buf, lx.scanDigitsWithSeparators(s, isDigit)...)
		}
	}

	if c, ok := s.src.Current(); ok && (c == 'e' || c == 'E') {
		n, hasNext := s.src.PeekByte(1)
		expDigitOffset := 1
		if hasNext && (n == '+' || n == '-') {
			expDigitOffset = 2
		}
		if d, ok2 := s.src.PeekByte(expDigitOffset); ok2 && isDigit(d) {
			isFloat = true
			buf = append(buf, c)
			s.src.Advance()
			if sign, ok3 := s.src.Current(); ok3 && (sign == '+' || sign == '-') {
				buf = append(buf, sign)
				s.src.Advance()
			}
			buf = append(buf, lx.scanDigitsWithSeparators(s, isDigit)...)
		}
	}

	if isFloat {
		f, err := strconv.ParseFloat(string(buf), 64)
		if err != nil {
			return nil, &SyntaxError{Kind: InvalidOctalLiteral, Span: span}
		}
		return &Token{Kind: LiteralFloat, Value: ByteString(buf), Span: span, Float: f}, nil
	}

	if startsWithZero && len(intPart) > 1 {
		// Legacy octal: every digit must be 0-7.
		for _, d := range intPart {
			if d == '8' || d == '9' {
				return nil, &SyntaxError{Kind: InvalidOctalLiteral, Span: span}
			}
		}
		return lx.finishInteger(span, intPart, 8)
	}

	return lx.finishInteger(span, intPart, 10)
}

// scanDigitsWithSeparators consumes a run of digits (per isDigitFn),
// allowing a single underscore between two digits, and returns the digits
// with underscores stripped.
func (lx *Lexer) scanDigitsWithSeparators(s *state, isDigitFn func(byte) bool) []byte {
	var out []byte
	lastWasDigit := false
	for {
		c, ok := s.src.Current()
		if !ok {
			break
		}
		if isDigitFn(c) {
			out = append(out, c)
			lastWasDigit = true
			s.src.Advance()
			continue
		}
		if c == '_' && lastWasDigit {
			if n, hasNext := s.src.PeekByte(1); hasNext && isDigitFn(n) {
				s.src.Advance()
				lastWasDigit = false
				continue
			}
		}
		break
	}
	return out
}

func (lx *Lexer) finishInteger(span Span, digits []byte, base int) (*Token, *SyntaxError) {
	text := string(digits)
	if v, err := strconv.ParseInt(text, base, 64); err == nil {
		return &Token{Kind: LiteralInteger, Value: ByteString(digits), Span: span, Int: v}, nil
	}
	// Overflow: widen via big.Int and promote to float.
	bi := new(big.Int)
	if _, ok := bi.SetString(text, base); !ok {
		return nil, &SyntaxError{Kind: InvalidOctalLiteral, Span: span}
	}
	f := new(big.Float).SetInt(bi)
	flt, _ := f.Float64()
	return &Token{Kind: LiteralFloat, Value: ByteString(digits), Span: span, Float: flt}, nil
}

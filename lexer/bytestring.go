package lexer

import (
	"fmt"
	"strings"
)

// ByteString is a byte string abstraction: source is not required to be
// valid UTF-8 (identifier continuation bytes may be anything in
// 0x80..=0xFF), so every textual payload in tokens and AST nodes carries
// raw bytes rather than a Go string's implied encoding.
type ByteString []byte

// String renders printable ASCII verbatim and escapes everything else with
// C-style escapes, matching the reference lexer's debug rendering.
func (b ByteString) String() string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case 0:
			sb.WriteString(`\0`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				fmt.Fprintf(&sb, `\x%02X`, c)
			}
		}
	}
	return sb.String()
}

// Bytes returns the underlying bytes.
func (b ByteString) Bytes() []byte { return []byte(b) }

// MarshalJSON renders the byte string as its display form rather than as a
// base64 blob, so serialized ASTs stay readable.
func (b ByteString) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", b.String())), nil
}

// NewByteString copies s into a ByteString.
func NewByteString(s string) ByteString {
	return ByteString(s)
}

package bytesource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTracksLineAndColumn(t *testing.T) {
	s := New([]byte("ab\ncd"))

	line, col := s.Span()
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	s.Advance() // 'a'
	s.Advance() // 'b'
	line, col = s.Span()
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)

	s.Advance() // '\n'
	line, col = s.Span()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

// TestLoneCarriageReturnDoesNotResetColumn matches spec.md §4.1's
// documented quirk: a lone '\r' never resets the column, unlike '\n'.
func TestLoneCarriageReturnDoesNotResetColumn(t *testing.T) {
	s := New([]byte("a\rb"))
	s.Advance() // 'a'
	s.Advance() // '\r'
	_, col := s.Span()
	assert.Equal(t, 3, col)
}

func TestPeekTruncatesAtEOF(t *testing.T) {
	s := New([]byte("ab"))
	assert.Equal(t, []byte("ab"), s.Peek(0, 10))
	assert.Nil(t, s.Peek(5, 2))
}

func TestCurrentAtEOF(t *testing.T) {
	s := New([]byte("a"))
	s.Advance()
	_, ok := s.Current()
	assert.False(t, ok)
	assert.True(t, s.Eof())
}

func TestStartsWithFoldIsCaseInsensitive(t *testing.T) {
	s := New([]byte("<?PHP rest"))
	assert.True(t, s.StartsWithFold([]byte("<?php")))
	assert.False(t, s.StartsWith([]byte("<?php")))
}

func TestSkipShebangConsumesLeadingLine(t *testing.T) {
	s := New([]byte("#!/usr/bin/env php\n<?php echo 1;"))
	s.SkipShebang()
	assert.True(t, s.StartsWith([]byte("\n<?php")))
}

func TestSkipShebangLeavesNonShebangUntouched(t *testing.T) {
	s := New([]byte("<?php echo 1;"))
	s.SkipShebang()
	assert.True(t, s.StartsWith([]byte("<?php")))
}

func TestRemainingAndOffset(t *testing.T) {
	s := New([]byte("hello"))
	s.Skip(2)
	require.Equal(t, 2, s.Offset())
	assert.Equal(t, []byte("llo"), s.Remaining())
}

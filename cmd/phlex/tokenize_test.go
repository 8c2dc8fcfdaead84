package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/phlex/lexer"
)

func TestPrintTokensJSON(t *testing.T) {
	tokens, err := lexer.New().Tokenize([]byte(`<?php echo "hi";`))
	require.Nil(t, err)

	var b strings.Builder
	require.NoError(t, printTokensJSON(&b, tokens))

	assert.Contains(t, b.String(), `"kind"`)
	assert.Contains(t, b.String(), "OpenTagFull")
}

func TestPrintTokensText(t *testing.T) {
	tokens, err := lexer.New().Tokenize([]byte(`<?php ;`))
	require.Nil(t, err)

	var b strings.Builder
	printTokensText(&b, tokens)

	assert.Contains(t, b.String(), "0:")
}

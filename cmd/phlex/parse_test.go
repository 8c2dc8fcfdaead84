package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/phlex/parser"
)

func TestPrintTree(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`<?php echo "hi";`))
	require.Nil(t, err)

	var b strings.Builder
	printTree(&b, prog, 0)

	assert.Contains(t, b.String(), "program")
	assert.Contains(t, b.String(), "echo_stmt")
	assert.Contains(t, b.String(), "string_literal")
}

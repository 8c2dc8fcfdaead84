package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProgramChildren exercises the generic traversal the printer/
// traverser collaborator relies on (spec.md §6): every node exposes its
// direct children in source order without a type switch.
func TestProgramChildren(t *testing.T) {
	lit := &StringLiteral{Value: []byte("hi"), Span: Span{Line: 1, Column: 12}}
	echo := &EchoStmt{Values: []Expression{lit}}
	prog := &Program{Statements: []Statement{echo}}

	require.Len(t, prog.Children(), 1)
	assert.Equal(t, "echo_stmt", prog.Children()[0].Tag())

	echoChildren := prog.Children()[0].Children()
	require.Len(t, echoChildren, 1)
	assert.Equal(t, "string_literal", echoChildren[0].Tag())
	assert.Empty(t, echoChildren[0].Children())
}

// TestMarshalJSONTaggedShape exercises the {"type", "value"} external
// encoding every AST variant must support (spec.md §6, "Serializer").
func TestMarshalJSONTaggedShape(t *testing.T) {
	lit := &IntegerLiteral{Value: 42, Raw: "42", Span: Span{Line: 1, Column: 1}}

	out, err := json.Marshal(lit)
	require.NoError(t, err)

	var decoded struct {
		Type  string `json:"type"`
		Value struct {
			Value int64 `json:"value"`
			Raw   string `json:"raw"`
		} `json:"value"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "integer_literal", decoded.Type)
	assert.Equal(t, int64(42), decoded.Value.Value)
	assert.Equal(t, "42", decoded.Value.Raw)
}

func TestProgramTag(t *testing.T) {
	prog := &Program{}
	assert.Equal(t, "program", prog.Tag())
	assert.Empty(t, prog.Children())
}

// Package ast defines the concrete-abstract syntax tree produced by the
// parser: a closed sum of statement and expression node types, each
// carrying the source span(s) it was built from. There is no semantic
// information here — no resolved names, no types, no back-references to
// parent nodes (spec.md §9, "no back-references in the AST").
package ast

import (
	"encoding/json"

	"github.com/wudi/phlex/lexer"
)

// Span is a single source position, re-exported from the lexer package so
// callers of ast never need to import lexer just to read a node's
// location.
type Span = lexer.Span

// Range is a (start, end) span pair, used by nodes anchored at more than a
// single point of concrete syntax.
type Range struct {
	Start Span
	End   Span
}

// Node is implemented by every statement and expression type. Children
// returns direct children in source order so a generic traversal (the
// printer/traverser collaborator in spec.md §6) can walk the tree without
// a type switch.
type Node interface {
	// Tag is the stable external name used when serializing this node
	// (e.g. to the JSON shape the serializer collaborator emits).
	Tag() string
	Children() []Node
}

// Statement is implemented by every statement-level node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression-level node.
type Expression interface {
	Node
	expressionNode()
}

// marshalTagged wraps v (which must not itself implement MarshalJSON, to
// avoid infinite recursion — callers pass a locally defined alias type) in
// the {"type": tag, "value": ...} shape spec.md §6 requires of the
// serializer collaborator.
func marshalTagged(tag string, v interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}{Type: tag, Value: v})
}

// Program is the root node: the full sequence of top-level statements
// parsed from one input, in source order.
type Program struct {
	Statements []Statement `json:"statements"`
}

func (p *Program) Tag() string { return "program" }
func (p *Program) Children() []Node {
	children := make([]Node, len(p.Statements))
	for i, s := range p.Statements {
		children[i] = s
	}
	return children
}

func (p *Program) MarshalJSON() ([]byte, error) {
	type alias Program
	return marshalTagged(p.Tag(), (*alias)(p))
}

func noChildren() []Node { return nil }

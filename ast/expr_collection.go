package ast

// ArrayItem is one entry of an array or list literal: `key => value`,
// `...$spread`, or a bare `value` (Key == nil).
type ArrayItem struct {
	Key    Expression `json:"key,omitempty"`
	Value  Expression `json:"value"`
	ByRef  bool       `json:"by_ref"`
	Spread bool       `json:"spread"`
}

func (i ArrayItem) Tag() string { return "array_item" }
func (i ArrayItem) Children() []Node {
	if i.Key == nil {
		return []Node{i.Value}
	}
	return []Node{i.Key, i.Value}
}
func (i ArrayItem) MarshalJSON() ([]byte, error) {
	type alias ArrayItem
	return marshalTagged(i.Tag(), alias(i))
}

func itemChildren(items []ArrayItem) []Node {
	children := make([]Node, len(items))
	for i, it := range items {
		children[i] = it
	}
	return children
}

// ArrayExpr is an array literal, `[...]` or `array(...)`.
type ArrayExpr struct {
	Items []ArrayItem `json:"items"`
	Span  Span        `json:"span"`
}

func (n *ArrayExpr) Tag() string      { return "array_expr" }
func (n *ArrayExpr) Children() []Node { return itemChildren(n.Items) }
func (n *ArrayExpr) expressionNode()  {}
func (n *ArrayExpr) MarshalJSON() ([]byte, error) {
	type alias ArrayExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ListExpr is a `list(...)` (or `[...]` used as a destructuring target)
// pattern. Kept distinct from ArrayExpr because it only ever appears as
// the target of an assignment or a foreach value.
type ListExpr struct {
	Items []ArrayItem `json:"items"`
	Span  Span        `json:"span"`
}

func (n *ListExpr) Tag() string      { return "list_expr" }
func (n *ListExpr) Children() []Node { return itemChildren(n.Items) }
func (n *ListExpr) expressionNode()  {}
func (n *ListExpr) MarshalJSON() ([]byte, error) {
	type alias ListExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ClosureUse is one entry of a closure's `use (...)` capture list.
type ClosureUse struct {
	Name  string `json:"name"`
	ByRef bool   `json:"by_ref"`
}

func (u ClosureUse) Tag() string      { return "closure_use" }
func (u ClosureUse) Children() []Node { return noChildren() }
func (u ClosureUse) MarshalJSON() ([]byte, error) {
	type alias ClosureUse
	return marshalTagged(u.Tag(), alias(u))
}

// ClosureExpr is an anonymous `function (...) use (...) { ... }`.
type ClosureExpr struct {
	Static     bool         `json:"static"`
	ByRef      bool         `json:"by_ref"`
	Params     []*Param     `json:"params"`
	Uses       []ClosureUse `json:"uses,omitempty"`
	ReturnType Type         `json:"return_type,omitempty"`
	Body       []Statement  `json:"body"`
	Span       Span         `json:"span"`
}

func (n *ClosureExpr) Tag() string { return "closure_expr" }
func (n *ClosureExpr) Children() []Node {
	var children []Node
	for _, p := range n.Params {
		children = append(children, p)
	}
	for _, u := range n.Uses {
		children = append(children, u)
	}
	if n.ReturnType != nil {
		children = append(children, n.ReturnType)
	}
	for _, s := range n.Body {
		children = append(children, s)
	}
	return children
}
func (n *ClosureExpr) expressionNode() {}
func (n *ClosureExpr) MarshalJSON() ([]byte, error) {
	type alias ClosureExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ArrowFunctionExpr is `fn (...) => expr`; it captures its enclosing scope
// implicitly (by value), so it carries no use list.
type ArrowFunctionExpr struct {
	Static     bool       `json:"static"`
	ByRef      bool       `json:"by_ref"`
	Params     []*Param   `json:"params"`
	ReturnType Type       `json:"return_type,omitempty"`
	Body       Expression `json:"body"`
	Span       Span       `json:"span"`
}

func (n *ArrowFunctionExpr) Tag() string { return "arrow_function_expr" }
func (n *ArrowFunctionExpr) Children() []Node {
	var children []Node
	for _, p := range n.Params {
		children = append(children, p)
	}
	if n.ReturnType != nil {
		children = append(children, n.ReturnType)
	}
	children = append(children, n.Body)
	return children
}
func (n *ArrowFunctionExpr) expressionNode() {}
func (n *ArrowFunctionExpr) MarshalJSON() ([]byte, error) {
	type alias ArrowFunctionExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// MatchArm is one `condition(s) => body` arm of a match expression; a nil
// Conditions slice denotes the `default` arm.
type MatchArm struct {
	Conditions []Expression `json:"conditions,omitempty"`
	Body       Expression   `json:"body"`
}

func (a MatchArm) Tag() string { return "match_arm" }
func (a MatchArm) Children() []Node {
	children := make([]Node, 0, len(a.Conditions)+1)
	for _, c := range a.Conditions {
		children = append(children, c)
	}
	children = append(children, a.Body)
	return children
}
func (a MatchArm) MarshalJSON() ([]byte, error) {
	type alias MatchArm
	return marshalTagged(a.Tag(), alias(a))
}

// MatchExpr is PHP 8's `match (subject) { arms }`, itself an expression
// rather than a statement (spec.md §3.5).
type MatchExpr struct {
	Subject Expression `json:"subject"`
	Arms    []MatchArm `json:"arms"`
	Span    Span       `json:"span"`
}

func (n *MatchExpr) Tag() string { return "match_expr" }
func (n *MatchExpr) Children() []Node {
	children := []Node{n.Subject}
	for _, a := range n.Arms {
		children = append(children, a)
	}
	return children
}
func (n *MatchExpr) expressionNode() {}
func (n *MatchExpr) MarshalJSON() ([]byte, error) {
	type alias MatchExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

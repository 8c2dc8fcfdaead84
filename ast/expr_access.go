package ast

// Argument is one entry of a call's argument list: a positional or named
// value, optionally spread (`...$xs`) or passed by reference.
type Argument struct {
	Name   string     `json:"name,omitempty"`
	Value  Expression `json:"value"`
	Spread bool       `json:"spread"`
	ByRef  bool       `json:"by_ref"`
}

func (a Argument) Tag() string      { return "argument" }
func (a Argument) Children() []Node { return []Node{a.Value} }
func (a Argument) MarshalJSON() ([]byte, error) {
	type alias Argument
	return marshalTagged(a.Tag(), alias(a))
}

func argChildren(args []Argument) []Node {
	children := make([]Node, len(args))
	for i, a := range args {
		children[i] = a
	}
	return children
}

// CallExpr is an ordinary function call, `callee(args)`.
type CallExpr struct {
	Callee Expression `json:"callee"`
	Args   []Argument `json:"args"`
}

func (n *CallExpr) Tag() string      { return "call_expr" }
func (n *CallExpr) Children() []Node { return append([]Node{n.Callee}, argChildren(n.Args)...) }
func (n *CallExpr) expressionNode()  {}
func (n *CallExpr) MarshalJSON() ([]byte, error) {
	type alias CallExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// MethodCallExpr is `$obj->method(args)` or, when Nullsafe, `$obj?->method(args)`.
type MethodCallExpr struct {
	Object   Expression `json:"object"`
	Method   Node       `json:"method"`
	Args     []Argument `json:"args"`
	Nullsafe bool       `json:"nullsafe"`
}

func (n *MethodCallExpr) Tag() string { return "method_call_expr" }
func (n *MethodCallExpr) Children() []Node {
	return append([]Node{n.Object, n.Method}, argChildren(n.Args)...)
}
func (n *MethodCallExpr) expressionNode() {}
func (n *MethodCallExpr) MarshalJSON() ([]byte, error) {
	type alias MethodCallExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// StaticCallExpr is `Class::method(args)`.
type StaticCallExpr struct {
	Class  Node       `json:"class"`
	Method Node       `json:"method"`
	Args   []Argument `json:"args"`
}

func (n *StaticCallExpr) Tag() string { return "static_call_expr" }
func (n *StaticCallExpr) Children() []Node {
	return append([]Node{n.Class, n.Method}, argChildren(n.Args)...)
}
func (n *StaticCallExpr) expressionNode() {}
func (n *StaticCallExpr) MarshalJSON() ([]byte, error) {
	type alias StaticCallExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// FirstClassCallableExpr wraps a call-site whose sole argument list is
// `(...)` — spec.md §4.8's closure-creation syntax. Target holds the
// callee shape (a CallExpr/MethodCallExpr/StaticCallExpr whose Args is
// always empty) that would otherwise have been built.
type FirstClassCallableExpr struct {
	Target Expression `json:"target"`
	Span   Span       `json:"span"`
}

func (n *FirstClassCallableExpr) Tag() string      { return "first_class_callable_expr" }
func (n *FirstClassCallableExpr) Children() []Node { return []Node{n.Target} }
func (n *FirstClassCallableExpr) expressionNode()  {}
func (n *FirstClassCallableExpr) MarshalJSON() ([]byte, error) {
	type alias FirstClassCallableExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// PropertyFetchExpr is `$obj->prop`, or `$obj?->prop` when Nullsafe.
type PropertyFetchExpr struct {
	Object   Expression `json:"object"`
	Property Node       `json:"property"`
	Nullsafe bool       `json:"nullsafe"`
}

func (n *PropertyFetchExpr) Tag() string      { return "property_fetch_expr" }
func (n *PropertyFetchExpr) Children() []Node { return []Node{n.Object, n.Property} }
func (n *PropertyFetchExpr) expressionNode()  {}
func (n *PropertyFetchExpr) MarshalJSON() ([]byte, error) {
	type alias PropertyFetchExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ClassConstFetchExpr is `Class::CONST` (also used for `Class::class`).
type ClassConstFetchExpr struct {
	Class Node `json:"class"`
	Const Node `json:"const"`
}

func (n *ClassConstFetchExpr) Tag() string      { return "class_const_fetch_expr" }
func (n *ClassConstFetchExpr) Children() []Node { return []Node{n.Class, n.Const} }
func (n *ClassConstFetchExpr) expressionNode()  {}
func (n *ClassConstFetchExpr) MarshalJSON() ([]byte, error) {
	type alias ClassConstFetchExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// StaticPropertyFetchExpr is `Class::$prop`, or `Class::{$expr}` when the
// property name is itself a computed expression (Property holds an
// Expression in that case instead of a Name).
type StaticPropertyFetchExpr struct {
	Class    Node `json:"class"`
	Property Node `json:"property"`
}

func (n *StaticPropertyFetchExpr) Tag() string      { return "static_property_fetch_expr" }
func (n *StaticPropertyFetchExpr) Children() []Node { return []Node{n.Class, n.Property} }
func (n *StaticPropertyFetchExpr) expressionNode()  {}
func (n *StaticPropertyFetchExpr) MarshalJSON() ([]byte, error) {
	type alias StaticPropertyFetchExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ConstFetchExpr is a bare constant reference, `FOO` or `Ns\FOO`.
type ConstFetchExpr struct {
	Name *Name `json:"name"`
}

func (n *ConstFetchExpr) Tag() string      { return "const_fetch_expr" }
func (n *ConstFetchExpr) Children() []Node { return []Node{n.Name} }
func (n *ConstFetchExpr) expressionNode()  {}
func (n *ConstFetchExpr) MarshalJSON() ([]byte, error) {
	type alias ConstFetchExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// SubscriptExpr is `$arr[$idx]`, or `$arr[]` (push syntax, Index == nil).
type SubscriptExpr struct {
	Array Expression `json:"array"`
	Index Expression `json:"index,omitempty"`
	Span  Span       `json:"span"`
}

func (n *SubscriptExpr) Tag() string { return "subscript_expr" }
func (n *SubscriptExpr) Children() []Node {
	if n.Index == nil {
		return []Node{n.Array}
	}
	return []Node{n.Array, n.Index}
}
func (n *SubscriptExpr) expressionNode() {}
func (n *SubscriptExpr) MarshalJSON() ([]byte, error) {
	type alias SubscriptExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// NewExpr is `new Class(args)`. Class is either a Node naming the class
// (Name, a variable, or another expression for `new ($expr)(...)`) or an
// *AnonClassExpr for `new class(...) { ... }`.
type NewExpr struct {
	Class Node       `json:"class"`
	Args  []Argument `json:"args"`
	Span  Span       `json:"span"`
}

func (n *NewExpr) Tag() string      { return "new_expr" }
func (n *NewExpr) Children() []Node { return append([]Node{n.Class}, argChildren(n.Args)...) }
func (n *NewExpr) expressionNode()  {}
func (n *NewExpr) MarshalJSON() ([]byte, error) {
	type alias NewExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

// AnonClassExpr is the class shape introduced by `new class(...) { ... }`;
// it reuses ClassDecl's member representation but has no Name.
type AnonClassExpr struct {
	Extends    *Name       `json:"extends,omitempty"`
	Implements []*Name     `json:"implements,omitempty"`
	Members    []Statement `json:"members"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

func (n *AnonClassExpr) Tag() string { return "anon_class_expr" }
func (n *AnonClassExpr) Children() []Node {
	var children []Node
	if n.Extends != nil {
		children = append(children, n.Extends)
	}
	for _, i := range n.Implements {
		children = append(children, i)
	}
	for _, m := range n.Members {
		children = append(children, m)
	}
	return children
}
func (n *AnonClassExpr) expressionNode() {}
func (n *AnonClassExpr) MarshalJSON() ([]byte, error) {
	type alias AnonClassExpr
	return marshalTagged(n.Tag(), (*alias)(n))
}

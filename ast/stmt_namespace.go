package ast

// NamespaceMode records whether a namespace statement used the bare form
// (`namespace Foo;`) or the braced form (`namespace Foo { ... }` /
// `namespace { ... }`); spec.md §4.5 forbids mixing or nesting either form.
type NamespaceMode int

const (
	NamespaceUnbraced NamespaceMode = iota
	NamespaceBraced
)

// NamespaceStmt is a namespace declaration. For the bare form, Body holds
// every statement up to the next namespace statement or EOF; for the
// braced form, Body holds the statements inside the braces.
type NamespaceStmt struct {
	Name string        `json:"name,omitempty"`
	Mode NamespaceMode `json:"mode"`
	Body []Statement   `json:"body"`
	Span Span          `json:"span"`
}

func (n *NamespaceStmt) Tag() string { return "namespace_stmt" }
func (n *NamespaceStmt) Children() []Node {
	children := make([]Node, len(n.Body))
	for i, s := range n.Body {
		children[i] = s
	}
	return children
}
func (n *NamespaceStmt) statementNode() {}
func (n *NamespaceStmt) MarshalJSON() ([]byte, error) {
	type alias NamespaceStmt
	return marshalTagged(n.Tag(), (*alias)(n))
}

// UseKind distinguishes a plain `use`, `use function`, and `use const`
// import.
type UseKind int

const (
	UseClass UseKind = iota
	UseFunction
	UseConst
)

// UseItem is one imported name, optionally aliased: `X\Y as Z`. Kind
// overrides the UseStmt's Kind for a single item inside a grouped import
// (`use X\{function f, const C}`).
type UseItem struct {
	Name  string  `json:"name"`
	Alias string  `json:"alias,omitempty"`
	Kind  UseKind `json:"kind"`
}

func (u UseItem) Tag() string      { return "use_item" }
func (u UseItem) Children() []Node { return noChildren() }
func (u UseItem) MarshalJSON() ([]byte, error) {
	type alias UseItem
	return marshalTagged(u.Tag(), alias(u))
}

// UseStmt is `use X\Y;`, `use function f;`, `use const C;`, or the grouped
// form `use X\{a, b as c};`. Prefix holds the shared leading segment for
// the grouped form (empty otherwise).
type UseStmt struct {
	Kind   UseKind   `json:"kind"`
	Prefix string    `json:"prefix,omitempty"`
	Items  []UseItem `json:"items"`
	Span   Span      `json:"span"`
}

func (n *UseStmt) Tag() string { return "use_stmt" }
func (n *UseStmt) Children() []Node {
	children := make([]Node, len(n.Items))
	for i, it := range n.Items {
		children[i] = it
	}
	return children
}
func (n *UseStmt) statementNode() {}
func (n *UseStmt) MarshalJSON() ([]byte, error) {
	type alias UseStmt
	return marshalTagged(n.Tag(), (*alias)(n))
}

// ConstDeclEntry is one `NAME = value` entry of a top-level `const`
// statement.
type ConstDeclEntry struct {
	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func (c ConstDeclEntry) Tag() string      { return "const_decl_entry" }
func (c ConstDeclEntry) Children() []Node { return []Node{c.Value} }
func (c ConstDeclEntry) MarshalJSON() ([]byte, error) {
	type alias ConstDeclEntry
	return marshalTagged(c.Tag(), alias(c))
}

// ConstDecl is a top-level `const NAME = value, ...;`.
type ConstDecl struct {
	Consts []ConstDeclEntry `json:"consts"`
	Span   Span             `json:"span"`
}

func (n *ConstDecl) Tag() string { return "const_decl" }
func (n *ConstDecl) Children() []Node {
	children := make([]Node, len(n.Consts))
	for i, c := range n.Consts {
		children[i] = c
	}
	return children
}
func (n *ConstDecl) statementNode() {}
func (n *ConstDecl) MarshalJSON() ([]byte, error) {
	type alias ConstDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// FunctionDecl is a top-level named `function` declaration.
type FunctionDecl struct {
	Name       string      `json:"name"`
	ByRef      bool        `json:"by_ref"`
	Params     []*Param    `json:"params"`
	ReturnType Type        `json:"return_type,omitempty"`
	Body       *BlockStmt  `json:"body"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

func (n *FunctionDecl) Tag() string { return "function_decl" }
func (n *FunctionDecl) Children() []Node {
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
func (n *FunctionDecl) statementNode() {}
func (n *FunctionDecl) MarshalJSON() ([]byte, error) {
	type alias FunctionDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

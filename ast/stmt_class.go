package ast

// Attribute is one `Name(args)` entry inside an attribute group.
type Attribute struct {
	Name *Name      `json:"name"`
	Args []Argument `json:"args,omitempty"`
}

func (a Attribute) Tag() string { return "attribute" }
func (a Attribute) Children() []Node {
	return append([]Node{a.Name}, argChildren(a.Args)...)
}
func (a Attribute) MarshalJSON() ([]byte, error) {
	type alias Attribute
	return marshalTagged(a.Tag(), alias(a))
}

// AttributeGroup is one `#[Attr1, Attr2(...)]` group. The parser
// accumulates these in ParserState's attribute buffer and attaches them
// to the next declaration (spec.md §4.5).
type AttributeGroup struct {
	Attributes []Attribute `json:"attributes"`
	Span       Span        `json:"span"`
}

func (g AttributeGroup) Tag() string { return "attribute_group" }
func (g AttributeGroup) Children() []Node {
	children := make([]Node, len(g.Attributes))
	for i, a := range g.Attributes {
		children[i] = a
	}
	return children
}
func (g AttributeGroup) MarshalJSON() ([]byte, error) {
	type alias AttributeGroup
	return marshalTagged(g.Tag(), alias(g))
}

// ClassDecl is a `class` declaration.
type ClassDecl struct {
	Name       string      `json:"name"`
	Modifiers  []Modifier  `json:"modifiers,omitempty"`
	Extends    *Name       `json:"extends,omitempty"`
	Implements []*Name     `json:"implements,omitempty"`
	Members    []Statement `json:"members"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

func (n *ClassDecl) Tag() string { return "class_decl" }
func (n *ClassDecl) Children() []Node {
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
func (n *ClassDecl) statementNode() {}
func (n *ClassDecl) MarshalJSON() ([]byte, error) {
	type alias ClassDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// IsAbstract reports whether the class carries the `abstract` modifier.
func (n *ClassDecl) IsAbstract() bool {
	for _, m := range n.Modifiers {
		if m == ModAbstract {
			return true
		}
	}
	return false
}

// TraitDecl is a `trait` declaration. Per the newer-AST-generation
// decision in spec.md §9's open question, traits may declare classish
// constants symmetrically with classes.
type TraitDecl struct {
	Name    string      `json:"name"`
	Members []Statement `json:"members"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span    Span        `json:"span"`
}

func (n *TraitDecl) Tag() string { return "trait_decl" }
func (n *TraitDecl) Children() []Node {
	children := make([]Node, len(n.Members))
	for i, m := range n.Members {
		children[i] = m
	}
	return children
}
func (n *TraitDecl) statementNode() {}
func (n *TraitDecl) MarshalJSON() ([]byte, error) {
	type alias TraitDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// InterfaceDecl is an `interface` declaration. Its methods carry no
// bodies (spec.md §4.9) and its constants are implicitly public+final.
type InterfaceDecl struct {
	Name    string      `json:"name"`
	Extends []*Name     `json:"extends,omitempty"`
	Members []Statement `json:"members"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span    Span        `json:"span"`
}

func (n *InterfaceDecl) Tag() string { return "interface_decl" }
func (n *InterfaceDecl) Children() []Node {
	var children []Node
	for _, e := range n.Extends {
		children = append(children, e)
	}
	for _, m := range n.Members {
		children = append(children, m)
	}
	return children
}
func (n *InterfaceDecl) statementNode() {}
func (n *InterfaceDecl) MarshalJSON() ([]byte, error) {
	type alias InterfaceDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// EnumDecl is an `enum` declaration. BackingType is non-nil for a backed
// enum (`enum Suit: string { ... }`); spec.md §3.6(f) requires every case
// to carry a value iff the enum is backed.
type EnumDecl struct {
	Name        string      `json:"name"`
	BackingType Type        `json:"backing_type,omitempty"`
	Implements  []*Name     `json:"implements,omitempty"`
	Members     []Statement `json:"members"`
	Attributes  []AttributeGroup `json:"attributes,omitempty"`
	Span        Span        `json:"span"`
}

func (n *EnumDecl) Tag() string { return "enum_decl" }
func (n *EnumDecl) Children() []Node {
	var children []Node
	if n.BackingType != nil {
		children = append(children, n.BackingType)
	}
	for _, i := range n.Implements {
		children = append(children, i)
	}
	for _, m := range n.Members {
		children = append(children, m)
	}
	return children
}
func (n *EnumDecl) statementNode() {}
func (n *EnumDecl) MarshalJSON() ([]byte, error) {
	type alias EnumDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// IsBacked reports whether this enum declares a backing type.
func (n *EnumDecl) IsBacked() bool { return n.BackingType != nil }

// EnumCaseDecl is one `case NAME [= value];` member of an enum.
type EnumCaseDecl struct {
	Name  string     `json:"name"`
	Value Expression `json:"value,omitempty"`
	Span  Span       `json:"span"`
}

func (n *EnumCaseDecl) Tag() string { return "enum_case_decl" }
func (n *EnumCaseDecl) Children() []Node {
	if n.Value == nil {
		return noChildren()
	}
	return []Node{n.Value}
}
func (n *EnumCaseDecl) statementNode() {}
func (n *EnumCaseDecl) MarshalJSON() ([]byte, error) {
	type alias EnumCaseDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// PropertyEntry is one `$name [= default]` entry of a property
// declaration statement (a single `public int $a = 1, $b = 2;` declares
// two entries sharing the same modifiers/type).
type PropertyEntry struct {
	Name    string     `json:"name"`
	Default Expression `json:"default,omitempty"`
}

func (p PropertyEntry) Tag() string { return "property_entry" }
func (p PropertyEntry) Children() []Node {
	if p.Default == nil {
		return noChildren()
	}
	return []Node{p.Default}
}
func (p PropertyEntry) MarshalJSON() ([]byte, error) {
	type alias PropertyEntry
	return marshalTagged(p.Tag(), alias(p))
}

// PropertyDecl is a class property declaration, `modifiers [type] $a, $b;`.
type PropertyDecl struct {
	Modifiers  []Modifier      `json:"modifiers"`
	Type       Type            `json:"prop_type,omitempty"`
	Entries    []PropertyEntry `json:"entries"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span       Span            `json:"span"`
}

func (n *PropertyDecl) Tag() string { return "property_decl" }
func (n *PropertyDecl) Children() []Node {
	var children []Node
	if n.Type != nil {
		children = append(children, n.Type)
	}
	for _, e := range n.Entries {
		children = append(children, e)
	}
	return children
}
func (n *PropertyDecl) statementNode() {}
func (n *PropertyDecl) MarshalJSON() ([]byte, error) {
	type alias PropertyDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

func (n *PropertyDecl) hasModifier(m Modifier) bool {
	for _, mm := range n.Modifiers {
		if mm == m {
			return true
		}
	}
	return false
}

// IsStatic reports whether this property is declared `static`.
func (n *PropertyDecl) IsStatic() bool { return n.hasModifier(ModStatic) }

// IsReadonly reports whether this property is declared `readonly`.
func (n *PropertyDecl) IsReadonly() bool { return n.hasModifier(ModReadonly) }

// MethodDecl is a class/trait/interface/enum method declaration.
// Interface methods have Body == nil (spec.md §4.9).
type MethodDecl struct {
	Name       string     `json:"name"`
	Modifiers  []Modifier `json:"modifiers"`
	ByRef      bool       `json:"by_ref"`
	Params     []*Param   `json:"params"`
	ReturnType Type       `json:"return_type,omitempty"`
	Body       *BlockStmt `json:"body,omitempty"`
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Span       Span       `json:"span"`
}

func (n *MethodDecl) Tag() string { return "method_decl" }
func (n *MethodDecl) Children() []Node {
	var children []Node
	for _, p := range n.Params {
		children = append(children, p)
	}
	if n.ReturnType != nil {
		children = append(children, n.ReturnType)
	}
	if n.Body != nil {
		children = append(children, n.Body)
	}
	return children
}
func (n *MethodDecl) statementNode() {}
func (n *MethodDecl) MarshalJSON() ([]byte, error) {
	type alias MethodDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

func (n *MethodDecl) hasModifier(m Modifier) bool {
	for _, mm := range n.Modifiers {
		if mm == m {
			return true
		}
	}
	return false
}

// IsAbstract reports whether this method is declared `abstract` or has no
// body (as interface methods do).
func (n *MethodDecl) IsAbstract() bool { return n.hasModifier(ModAbstract) || n.Body == nil }

// IsStatic reports whether this method is declared `static`.
func (n *MethodDecl) IsStatic() bool { return n.hasModifier(ModStatic) }

// ClassConstEntry is one `NAME = value` entry of a classish constant
// declaration.
type ClassConstEntry struct {
	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func (c ClassConstEntry) Tag() string      { return "class_const_entry" }
func (c ClassConstEntry) Children() []Node { return []Node{c.Value} }
func (c ClassConstEntry) MarshalJSON() ([]byte, error) {
	type alias ClassConstEntry
	return marshalTagged(c.Tag(), alias(c))
}

// ClassConstDecl is a classish `const NAME = value, ...;` declaration,
// valid inside a class, trait (per the §9 open-question decision),
// interface, or enum body.
type ClassConstDecl struct {
	Modifiers  []Modifier        `json:"modifiers"`
	Type       Type              `json:"const_type,omitempty"`
	Consts     []ClassConstEntry `json:"consts"`
	Attributes []AttributeGroup  `json:"attributes,omitempty"`
	Span       Span              `json:"span"`
}

func (n *ClassConstDecl) Tag() string { return "class_const_decl" }
func (n *ClassConstDecl) Children() []Node {
	var children []Node
	if n.Type != nil {
		children = append(children, n.Type)
	}
	for _, c := range n.Consts {
		children = append(children, c)
	}
	return children
}
func (n *ClassConstDecl) statementNode() {}
func (n *ClassConstDecl) MarshalJSON() ([]byte, error) {
	type alias ClassConstDecl
	return marshalTagged(n.Tag(), (*alias)(n))
}

// TraitAdaptationKind distinguishes the two `insteadof`/`as` trait
// conflict-resolution adaptations.
type TraitAdaptationKind int

const (
	AdaptationInsteadOf TraitAdaptationKind = iota
	AdaptationAlias
)

// TraitAdaptation is one entry of a `use Trait1, Trait2 { ... }` block's
// adaptation list.
type TraitAdaptation struct {
	Kind          TraitAdaptationKind `json:"kind"`
	Trait         string              `json:"trait,omitempty"`
	Method        string              `json:"method"`
	InsteadOf     []string            `json:"instead_of,omitempty"`
	NewVisibility *Modifier           `json:"new_visibility,omitempty"`
	NewName       string              `json:"new_name,omitempty"`
}

func (a TraitAdaptation) Tag() string      { return "trait_adaptation" }
func (a TraitAdaptation) Children() []Node { return noChildren() }
func (a TraitAdaptation) MarshalJSON() ([]byte, error) {
	type alias TraitAdaptation
	return marshalTagged(a.Tag(), alias(a))
}

// UseTraitStmt is a class/trait body's `use Trait1, Trait2 { adaptations };`.
type UseTraitStmt struct {
	Traits      []*Name           `json:"traits"`
	Adaptations []TraitAdaptation `json:"adaptations,omitempty"`
	Span        Span              `json:"span"`
}

func (n *UseTraitStmt) Tag() string { return "use_trait_stmt" }
func (n *UseTraitStmt) Children() []Node {
	children := make([]Node, 0, len(n.Traits)+len(n.Adaptations))
	for _, t := range n.Traits {
		children = append(children, t)
	}
	for _, a := range n.Adaptations {
		children = append(children, a)
	}
	return children
}
func (n *UseTraitStmt) statementNode() {}
func (n *UseTraitStmt) MarshalJSON() ([]byte, error) {
	type alias UseTraitStmt
	return marshalTagged(n.Tag(), (*alias)(n))
}

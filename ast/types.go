package ast

// Type is the sum of type-expression shapes parsed by spec.md §4.10:
// a bare name, a nullable `?T`, a union `A|B`, or an intersection `A&B`.
type Type interface {
	Node
	typeNode()
}

// SimpleType is a single type name: a builtin (`array`, `int`, `mixed`,
// ...), a relative name (`self`, `parent`, `static`), or an identifier
// (possibly qualified).
type SimpleType struct {
	Name string `json:"name"`
	Span Span   `json:"span"`
}

func (t *SimpleType) Tag() string      { return "simple_type" }
func (t *SimpleType) Children() []Node { return noChildren() }
func (t *SimpleType) typeNode()        {}
func (t *SimpleType) MarshalJSON() ([]byte, error) {
	type alias SimpleType
	return marshalTagged(t.Tag(), (*alias)(t))
}

// NullableType is `?T`; spec.md §4.10 forbids T itself being a union or
// intersection at this site, which the parser enforces before building
// this node.
type NullableType struct {
	Inner Type `json:"inner"`
	Span  Span `json:"span"`
}

func (t *NullableType) Tag() string      { return "nullable_type" }
func (t *NullableType) Children() []Node { return []Node{t.Inner} }
func (t *NullableType) typeNode()        {}
func (t *NullableType) MarshalJSON() ([]byte, error) {
	type alias NullableType
	return marshalTagged(t.Tag(), (*alias)(t))
}

// UnionType is `A|B|...`.
type UnionType struct {
	Types []Type `json:"types"`
}

func (t *UnionType) Tag() string { return "union_type" }
func (t *UnionType) Children() []Node {
	children := make([]Node, len(t.Types))
	for i, ty := range t.Types {
		children[i] = ty
	}
	return children
}
func (t *UnionType) typeNode() {}
func (t *UnionType) MarshalJSON() ([]byte, error) {
	type alias UnionType
	return marshalTagged(t.Tag(), (*alias)(t))
}

// IntersectionType is `A&B&...`.
type IntersectionType struct {
	Types []Type `json:"types"`
}

func (t *IntersectionType) Tag() string { return "intersection_type" }
func (t *IntersectionType) Children() []Node {
	children := make([]Node, len(t.Types))
	for i, ty := range t.Types {
		children[i] = ty
	}
	return children
}
func (t *IntersectionType) typeNode() {}
func (t *IntersectionType) MarshalJSON() ([]byte, error) {
	type alias IntersectionType
	return marshalTagged(t.Tag(), (*alias)(t))
}

// standaloneTypeNames are types that may not appear inside a union or
// intersection (spec.md §4.10): void, never, and mixed are standalone.
var standaloneTypeNames = map[string]bool{
	"void":  true,
	"never": true,
	"mixed": true,
}

// IsStandalone reports whether name denotes a standalone type that cannot
// be combined with `|` or `&`.
func IsStandalone(name string) bool { return standaloneTypeNames[name] }

// forbiddenPropertyTypeNames may not appear in a property or parameter
// type (spec.md §3.6(e)).
var forbiddenPropertyTypeNames = map[string]bool{
	"callable": true,
	"void":     true,
	"never":    true,
}

// IsForbiddenInPropertyType reports whether name may not be used as (part
// of) a typed property or parameter's type.
func IsForbiddenInPropertyType(name string) bool { return forbiddenPropertyTypeNames[name] }

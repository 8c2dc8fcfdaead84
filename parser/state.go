package parser

import "github.com/wudi/phlex/ast"

// ScopeKind identifies the kind of declaration a Scope frame was pushed
// for. The parser consults the innermost matching frame to answer
// context-sensitive questions: is `yield` legal here, is a bare `parent`
// reference meaningful, does the enclosing classish accept constants.
type ScopeKind int

const (
	ScopeFunction ScopeKind = iota
	ScopeMethod
	ScopeClass
	ScopeTrait
	ScopeInterface
	ScopeEnum
	ScopeNamespace
)

// Scope is one frame of the parser's nesting stack (spec.md §4.4's
// "Scope stack" collaborator).
type Scope struct {
	Kind      ScopeKind
	Name      string
	Modifiers []ast.Modifier
	HasParent bool
	Backed    bool
	Static    bool
}

// NamespaceMode tracks whether the source so far has committed to the
// bare `namespace X;` form or the braced `namespace X { }` form, so the
// parser can reject mixing them (spec.md §4.5).
type NamespaceMode int

const (
	nsNone NamespaceMode = iota
	nsUnbraced
	nsBraced
)

// State threads the parser's cross-cutting bookkeeping: the scope stack,
// the pending attribute-group buffer accumulated ahead of a declaration,
// and namespace-form tracking.
type State struct {
	scopes     []Scope
	attributes []ast.AttributeGroup
	nsMode     NamespaceMode
	inNsBlock  bool
}

func newState() *State {
	return &State{}
}

func (s *State) pushScope(scope Scope) {
	s.scopes = append(s.scopes, scope)
}

func (s *State) popScope() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *State) currentScope() (Scope, bool) {
	if len(s.scopes) == 0 {
		return Scope{}, false
	}
	return s.scopes[len(s.scopes)-1], true
}

// inFunctionLike reports whether the parser is nested inside a function,
// method, or closure body, where constructs like `return` are legal.
func (s *State) inFunctionLike() bool {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		switch s.scopes[i].Kind {
		case ScopeFunction, ScopeMethod:
			return true
		}
	}
	return false
}

// classishScope returns the innermost class/trait/interface/enum frame,
// used by member parsing to decide which modifier-group table applies.
func (s *State) classishScope() (Scope, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		switch s.scopes[i].Kind {
		case ScopeClass, ScopeTrait, ScopeInterface, ScopeEnum:
			return s.scopes[i], true
		}
	}
	return Scope{}, false
}

// takeAttributes drains and returns the attribute groups accumulated
// ahead of the declaration currently being parsed.
func (s *State) takeAttributes() []ast.AttributeGroup {
	attrs := s.attributes
	s.attributes = nil
	return attrs
}

func (s *State) addAttributes(groups []ast.AttributeGroup) {
	s.attributes = append(s.attributes, groups...)
}

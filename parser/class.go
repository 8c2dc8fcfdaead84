package parser

import (
	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

func (p *Parser) parseClassDeclWithModifiers() (ast.Statement, *ParseError) {
	var mods []ast.Modifier
	for {
		if m, ok := modifierKeywords[p.ts.Current().Kind]; ok {
			mods = append(mods, m)
			p.ts.Next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.KwClass); err != nil {
		return nil, err
	}
	return p.parseClassDecl(mods)
}

func (p *Parser) parseClassDecl(mods []ast.Modifier) (ast.Statement, *ParseError) {
	attrs := p.state.takeAttributes()
	tok := p.ts.Current()
	if err := validateModifiers(mods, targetClass, tok.Span, false, false); err != nil {
		return nil, err
	}
	p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var extends *ast.Name
	if p.accept(lexer.KwExtends) {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		extends = n
	}
	var implements []*ast.Name
	if p.accept(lexer.KwImplements) {
		for {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			implements = append(implements, n)
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	isAbstract := false
	for _, m := range mods {
		if m == ast.ModAbstract {
			isAbstract = true
		}
	}
	p.state.pushScope(Scope{Kind: ScopeClass, Name: string(name.Value), Modifiers: mods, HasParent: extends != nil})
	members, err := p.parseClassMembers(isAbstract, false)
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{
		Name: string(name.Value), Modifiers: mods, Extends: extends, Implements: implements,
		Members: members, Attributes: attrs, Span: tok.Span,
	}, nil
}

func (p *Parser) parseTraitDecl() (ast.Statement, *ParseError) {
	attrs := p.state.takeAttributes()
	tok := p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	p.state.pushScope(Scope{Kind: ScopeTrait, Name: string(name.Value)})
	members, err := p.parseClassMembers(false, true)
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.TraitDecl{Name: string(name.Value), Members: members, Attributes: attrs, Span: tok.Span}, nil
}

func (p *Parser) parseInterfaceDecl() (ast.Statement, *ParseError) {
	attrs := p.state.takeAttributes()
	tok := p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var extends []*ast.Name
	if p.accept(lexer.KwExtends) {
		for {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			extends = append(extends, n)
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	p.state.pushScope(Scope{Kind: ScopeInterface, Name: string(name.Value)})
	members, err := p.parseClassMembers(false, true)
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceDecl{Name: string(name.Value), Extends: extends, Members: members, Attributes: attrs, Span: tok.Span}, nil
}

func (p *Parser) parseEnumDecl() (ast.Statement, *ParseError) {
	attrs := p.state.takeAttributes()
	tok := p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var backing ast.Type
	if p.accept(lexer.Colon) {
		t, err := p.parseSimpleType()
		if err != nil {
			return nil, err
		}
		backing = t
	}
	var implements []*ast.Name
	if p.accept(lexer.KwImplements) {
		for {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			implements = append(implements, n)
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	p.state.pushScope(Scope{Kind: ScopeEnum, Name: string(name.Value), Backed: backing != nil})
	members, err := p.parseClassMembers(false, false)
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.EnumDecl{
		Name: string(name.Value), BackingType: backing, Implements: implements,
		Members: members, Attributes: attrs, Span: tok.Span,
	}, nil
}

// parseClassMembers parses the brace-delimited body shared by class,
// trait, interface, and enum declarations, and by anonymous classes.
func (p *Parser) parseClassMembers(enclosingAbstract, traitOrIface bool) ([]ast.Statement, *ParseError) {
	if _, err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	var members []ast.Statement
	for !p.at(lexer.RightBrace) {
		m, err := p.parseClassMember(enclosingAbstract, traitOrIface)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if _, err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Parser) parseClassMember(enclosingAbstract, traitOrIface bool) (ast.Statement, *ParseError) {
	attrs, err := p.parseAttributeGroups()
	if err != nil {
		return nil, err
	}

	scope, _ := p.state.classishScope()

	if p.at(lexer.KwCase) {
		return p.parseEnumCase()
	}
	if p.at(lexer.KwUse) {
		return p.parseUseTrait()
	}

	start := p.ts.Current().Span
	var mods []ast.Modifier
	for {
		if m, ok := modifierKeywords[p.ts.Current().Kind]; ok {
			mods = append(mods, m)
			p.ts.Next()
			continue
		}
		break
	}

	if p.at(lexer.KwConst) {
		return p.parseClassConstDecl(mods, attrs, start)
	}
	if p.at(lexer.KwFunction) {
		return p.parseMethodDecl(mods, attrs, start, scope, enclosingAbstract, traitOrIface)
	}
	return p.parsePropertyDecl(mods, attrs, start)
}

func (p *Parser) parseEnumCase() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if p.accept(lexer.Assign) {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	scope, _ := p.state.classishScope()
	if scope.Backed && value == nil {
		return nil, &ParseError{Kind: MissingCaseValueForBackedEnum, Span: tok.Span, Subject: string(name.Value)}
	}
	if !scope.Backed && value != nil {
		return nil, &ParseError{Kind: CaseValueForUnitEnum, Span: tok.Span, Subject: string(name.Value)}
	}
	return &ast.EnumCaseDecl{Name: string(name.Value), Value: value, Span: tok.Span}, nil
}

func (p *Parser) parseUseTrait() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var traits []*ast.Name
	for {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		traits = append(traits, n)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	var adaptations []ast.TraitAdaptation
	if p.accept(lexer.LeftBrace) {
		for !p.at(lexer.RightBrace) {
			a, err := p.parseTraitAdaptation()
			if err != nil {
				return nil, err
			}
			adaptations = append(adaptations, a)
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
	} else if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.UseTraitStmt{Traits: traits, Adaptations: adaptations, Span: tok.Span}, nil
}

func (p *Parser) parseTraitAdaptation() (ast.TraitAdaptation, *ParseError) {
	var traitName string
	first, err := p.expect(lexer.Identifier)
	if err != nil {
		return ast.TraitAdaptation{}, err
	}
	method := string(first.Value)
	if p.accept(lexer.DoubleColon) {
		traitName = method
		m, err := p.expect(lexer.Identifier)
		if err != nil {
			return ast.TraitAdaptation{}, err
		}
		method = string(m.Value)
	}
	if p.accept(lexer.KwInsteadof) {
		var instead []string
		for {
			n, err := p.parseName()
			if err != nil {
				return ast.TraitAdaptation{}, err
			}
			instead = append(instead, n.Value)
			if !p.accept(lexer.Comma) {
				break
			}
		}
		if err := p.expectStatementEnd(); err != nil {
			return ast.TraitAdaptation{}, err
		}
		return ast.TraitAdaptation{Kind: ast.AdaptationInsteadOf, Trait: traitName, Method: method, InsteadOf: instead}, nil
	}
	if _, err := p.expect(lexer.KwAs); err != nil {
		return ast.TraitAdaptation{}, err
	}
	var vis *ast.Modifier
	if m, ok := modifierKeywords[p.ts.Current().Kind]; ok && isVisibility(m) {
		p.ts.Next()
		vis = &m
	}
	var newName string
	if p.at(lexer.Identifier) {
		n := p.ts.Next()
		newName = string(n.Value)
	}
	if err := p.expectStatementEnd(); err != nil {
		return ast.TraitAdaptation{}, err
	}
	return ast.TraitAdaptation{Kind: ast.AdaptationAlias, Trait: traitName, Method: method, NewVisibility: vis, NewName: newName}, nil
}

func (p *Parser) parseClassConstDecl(mods []ast.Modifier, attrs []ast.AttributeGroup, start lexer.Span) (ast.Statement, *ParseError) {
	target := targetClassishConstant
	if scope, ok := p.state.classishScope(); ok && scope.Kind == ScopeInterface {
		target = targetInterfaceConstant
	}
	if err := validateModifiers(mods, target, start, false, false); err != nil {
		return nil, err
	}
	p.ts.Next()

	// A typed constant (`const int X = 1;`) and a plain one (`const X =
	// 1;`) both start with an Identifier, so a single token of lookahead
	// can't tell them apart once unions/intersections are in play.
	// Tentatively parse a type and keep it only if an Identifier (the
	// constant's name) follows; otherwise undo and treat the parsed
	// tokens as the name itself.
	var typ ast.Type
	if p.typeStartsAt(p.ts.Current()) {
		savePos, savePending := p.ts.mark()
		t, terr := p.parseType()
		if terr == nil && p.at(lexer.Identifier) {
			typ = t
		} else {
			p.ts.reset(savePos, savePending)
		}
	}
	var entries []ast.ClassConstEntry
	for {
		name, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.ClassConstEntry{Name: string(name.Value), Value: value})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ClassConstDecl{Modifiers: mods, Type: typ, Consts: entries, Attributes: attrs, Span: start}, nil
}

func (p *Parser) parseMethodDecl(mods []ast.Modifier, attrs []ast.AttributeGroup, start lexer.Span, scope Scope, enclosingAbstract, traitOrIface bool) (ast.Statement, *ParseError) {
	target := targetClassMethod
	switch scope.Kind {
	case ScopeEnum:
		target = targetEnumMethod
	case ScopeInterface:
		target = targetInterfaceMethod
	}
	if err := validateModifiers(mods, target, start, enclosingAbstract, traitOrIface); err != nil {
		return nil, err
	}
	p.ts.Next()
	byRef := p.accept(lexer.Amp)
	name, err := p.parseMethodName()
	if err != nil {
		return nil, err
	}
	if scope.Kind == ScopeEnum && name == "__construct" {
		return nil, &ParseError{Kind: ConstructorInEnum, Span: start}
	}
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	p.state.pushScope(Scope{Kind: ScopeMethod, Name: name, Modifiers: mods})
	params, err := p.parseParamList()
	if err != nil {
		p.state.popScope()
		return nil, err
	}
	var retType ast.Type
	if p.accept(lexer.Colon) {
		retType, err = p.parseType()
		if err != nil {
			p.state.popScope()
			return nil, err
		}
	}

	isAbstract := scope.Kind == ScopeInterface
	for _, m := range mods {
		if m == ast.ModAbstract {
			isAbstract = true
		}
	}
	var body *ast.BlockStmt
	if isAbstract {
		p.state.popScope()
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	} else {
		b, err := p.parseBlock()
		p.state.popScope()
		if err != nil {
			return nil, err
		}
		body = b
	}
	return &ast.MethodDecl{
		Name: name, Modifiers: mods, ByRef: byRef, Params: params, ReturnType: retType,
		Body: body, Attributes: attrs, Span: start,
	}, nil
}

// methodNameKeywords lists keyword tokens PHP allows as method names
// (e.g. `function list()`, `function static()` are legal since method
// names live in their own namespace).
var methodNameKeywords = map[lexer.TokenKind]bool{
	lexer.KwList: true, lexer.KwArray: true, lexer.KwClass: true, lexer.KwStatic: true,
	lexer.KwSelf: true, lexer.KwParent: true, lexer.KwDefault: true, lexer.KwPrint: true,
	lexer.KwEcho: true, lexer.KwNew: true, lexer.KwClone: true, lexer.KwMatch: true,
	lexer.KwEnum: true, lexer.KwFn: true, lexer.KwUnset: true, lexer.KwIsset: true,
	lexer.KwEmpty: true, lexer.KwUse: true, lexer.KwNamespace: true,
}

func (p *Parser) parseMethodName() (string, *ParseError) {
	tok := p.ts.Current()
	if tok.Kind == lexer.Identifier || methodNameKeywords[tok.Kind] {
		p.ts.Next()
		return string(tok.Value), nil
	}
	return "", &ParseError{Kind: ExpectedToken, Span: tok.Span, Expected: []string{"a method name"}, Actual: describeToken(tok)}
}

func (p *Parser) parsePropertyDecl(mods []ast.Modifier, attrs []ast.AttributeGroup, start lexer.Span) (ast.Statement, *ParseError) {
	if err := validateModifiers(mods, targetProperty, start, false, false); err != nil {
		return nil, err
	}
	var typ ast.Type
	if p.typeStartsAt(p.ts.Current()) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
		if name, bad := forbiddenTypeName(t); bad {
			return nil, &ParseError{Kind: ForbiddenTypeUsedInProperty, Span: start, Subject: name}
		}
	}

	readonly := false
	for _, m := range mods {
		if m == ast.ModReadonly {
			readonly = true
		}
	}
	if readonly && typ == nil {
		return nil, &ParseError{Kind: MissingTypeForReadonlyProperty, Span: start}
	}

	var entries []ast.PropertyEntry
	for {
		v, err := p.expect(lexer.Variable)
		if err != nil {
			return nil, err
		}
		var def ast.Expression
		if p.accept(lexer.Assign) {
			if readonly {
				return nil, &ParseError{Kind: ReadonlyPropertyHasDefaultValue, Span: v.Span}
			}
			d, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			def = d
		}
		entries = append(entries, ast.PropertyEntry{Name: string(v.Value), Default: def})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.PropertyDecl{Modifiers: mods, Type: typ, Entries: entries, Attributes: attrs, Span: start}, nil
}

// forbiddenTypeName walks t looking for a simple type name forbidden in
// property/parameter position (spec.md §3.6(e)).
func forbiddenTypeName(t ast.Type) (string, bool) {
	switch v := t.(type) {
	case *ast.SimpleType:
		if ast.IsForbiddenInPropertyType(v.Name) {
			return v.Name, true
		}
	case *ast.NullableType:
		return forbiddenTypeName(v.Inner)
	case *ast.UnionType:
		for _, m := range v.Types {
			if name, bad := forbiddenTypeName(m); bad {
				return name, true
			}
		}
	case *ast.IntersectionType:
		for _, m := range v.Types {
			if name, bad := forbiddenTypeName(m); bad {
				return name, true
			}
		}
	}
	return "", false
}

package parser

import (
	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

// modifierKeywords maps the modifier keyword tokens to their ast.Modifier
// value, used by both property/method declarations and promoted
// constructor parameters.
var modifierKeywords = map[lexer.TokenKind]ast.Modifier{
	lexer.KwPublic:    ast.ModPublic,
	lexer.KwProtected: ast.ModProtected,
	lexer.KwPrivate:   ast.ModPrivate,
	lexer.KwStatic:    ast.ModStatic,
	lexer.KwFinal:     ast.ModFinal,
	lexer.KwAbstract:  ast.ModAbstract,
	lexer.KwReadonly:  ast.ModReadonly,
	lexer.KwVar:       ast.ModVar,
}

// parseStatement dispatches on the current token to the statement
// production it starts (spec.md §4.7).
func (p *Parser) parseStatement() (ast.Statement, *ParseError) {
	if p.at(lexer.InlineTemplate) {
		tok := p.ts.Next()
		return &ast.InlineTemplateStmt{Value: tok.Value.Bytes(), Span: tok.Span}, nil
	}
	if groups, err := p.parseAttributeGroups(); err != nil {
		return nil, err
	} else if groups != nil {
		p.state.addAttributes(groups)
		return p.parseStatement()
	}

	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.LeftBrace:
		return p.parseBlock()
	case lexer.Semicolon:
		p.ts.Next()
		return &ast.EmptyStmt{Span: tok.Span}, nil
	case lexer.KwNamespace:
		return p.parseNamespace()
	case lexer.KwUse:
		return p.parseUse()
	case lexer.KwConst:
		return p.parseConstDecl()
	case lexer.KwFunction:
		if p.isFunctionDeclStart() {
			return p.parseFunctionDecl()
		}
	case lexer.KwAbstract, lexer.KwFinal, lexer.KwReadonly:
		return p.parseClassDeclWithModifiers()
	case lexer.KwClass:
		return p.parseClassDecl(nil)
	case lexer.KwTrait:
		return p.parseTraitDecl()
	case lexer.KwInterface:
		return p.parseInterfaceDecl()
	case lexer.KwEnum:
		return p.parseEnumDecl()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwDo:
		return p.parseDoWhile()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwForeach:
		return p.parseForeach()
	case lexer.KwSwitch:
		return p.parseSwitch()
	case lexer.KwTry:
		return p.parseTry()
	case lexer.KwEcho:
		return p.parseEcho()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwBreak:
		return p.parseBreakContinue(true)
	case lexer.KwContinue:
		return p.parseBreakContinue(false)
	case lexer.KwGoto:
		return p.parseGoto()
	case lexer.KwGlobal:
		return p.parseGlobal()
	case lexer.KwStatic:
		if p.isStaticVarDeclStart() {
			return p.parseStaticVarDecl()
		}
	case lexer.KwDeclare:
		return p.parseDeclare()
	case lexer.KwUnset:
		return p.parseUnset()
	case lexer.Identifier:
		if p.ts.Peek().Kind == lexer.Colon {
			return p.parseLabel()
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}

// expectStatementEnd consumes the `;` a simple statement ends with. A
// following close tag or EOF also terminates the statement, matching the
// lexer's handling of an implicit `;` before `?>`.
func (p *Parser) expectStatementEnd() *ParseError {
	if p.at(lexer.Semicolon) {
		p.ts.Next()
		return nil
	}
	if p.at(lexer.CloseTag) || p.ts.IsEOF() {
		return nil
	}
	_, err := p.expect(lexer.Semicolon)
	return err
}

// isFunctionDeclStart disambiguates `function name(...)` (a declaration)
// from `function(...)` / `function &(...)` (a closure expression
// statement) by checking whether an identifier, or `&` then an
// identifier, follows.
func (p *Parser) isFunctionDeclStart() bool {
	next := p.ts.Peek()
	if next.Kind == lexer.Amp {
		return p.ts.Lookahead(1).Kind == lexer.Identifier
	}
	return next.Kind == lexer.Identifier
}

// isStaticVarDeclStart disambiguates `static $a = 1;` from `static`'s use
// as a closure modifier or as a name (`static::foo()`, `Foo::$bar`).
func (p *Parser) isStaticVarDeclStart() bool {
	next := p.ts.Peek()
	return next.Kind == lexer.Variable
}

func (p *Parser) parseBlock() (*ast.BlockStmt, *ParseError) {
	if _, err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.at(lexer.RightBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Statements: stmts}, nil
}

// parseBlockStatements parses a closure/function/method body's `{ ... }`.
func (p *Parser) parseBlockStatements() (*ast.BlockStmt, *ParseError) {
	return p.parseBlock()
}

// parseStatementsUntil collects statements up to (not including) any of
// the end keywords, used by the `:`-delimited alternative control-flow
// syntax (spec.md §4.7).
func (p *Parser) parseStatementsUntil(ends ...lexer.TokenKind) ([]ast.Statement, *ParseError) {
	var stmts []ast.Statement
	for {
		cur := p.ts.Current().Kind
		for _, e := range ends {
			if cur == e {
				return stmts, nil
			}
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
}

func blockOf(stmts []ast.Statement) *ast.BlockStmt {
	return &ast.BlockStmt{Statements: stmts}
}

// --- namespace / use / const ---------------------------------------------

func (p *Parser) parseNamespace() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var name string
	if p.isNameStart(p.ts.Current()) && !p.at(lexer.LeftBrace) {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		name = n.Value
	}
	if p.at(lexer.LeftBrace) {
		if p.state.nsMode == nsUnbraced {
			return nil, &ParseError{Kind: MixingBracedAndUnbracedNamespaces, Span: tok.Span}
		}
		if p.state.inNsBlock {
			return nil, &ParseError{Kind: NestedNamespaceDeclarations, Span: tok.Span}
		}
		p.state.nsMode = nsBraced
		p.state.inNsBlock = true
		body, err := p.parseStatementsUntil(lexer.RightBrace)
		p.state.inNsBlock = false
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		return &ast.NamespaceStmt{Name: name, Mode: ast.NamespaceBraced, Body: body, Span: tok.Span}, nil
	}
	if p.state.nsMode == nsBraced {
		return nil, &ParseError{Kind: MixingBracedAndUnbracedNamespaces, Span: tok.Span}
	}
	p.state.nsMode = nsUnbraced
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(lexer.KwNamespace, lexer.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.NamespaceStmt{Name: name, Mode: ast.NamespaceUnbraced, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseUse() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	kind := ast.UseClass
	if p.accept(lexer.KwFunction) {
		kind = ast.UseFunction
	} else if p.accept(lexer.KwConst) {
		kind = ast.UseConst
	}

	first, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.accept(lexer.LeftBrace) {
		prefix := first.Value
		var items []ast.UseItem
		for !p.at(lexer.RightBrace) {
			itemKind := kind
			if p.accept(lexer.KwFunction) {
				itemKind = ast.UseFunction
			} else if p.accept(lexer.KwConst) {
				itemKind = ast.UseConst
			}
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			var alias string
			if p.accept(lexer.KwAs) {
				a, err := p.expect(lexer.Identifier)
				if err != nil {
					return nil, err
				}
				alias = string(a.Value)
			}
			items = append(items, ast.UseItem{Name: n.Value, Alias: alias, Kind: itemKind})
			if !p.accept(lexer.Comma) {
				break
			}
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.UseStmt{Kind: kind, Prefix: prefix, Items: items, Span: tok.Span}, nil
	}

	var alias string
	if p.accept(lexer.KwAs) {
		a, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		alias = string(a.Value)
	}
	items := []ast.UseItem{{Name: first.Value, Alias: alias, Kind: kind}}
	for p.accept(lexer.Comma) {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		var a string
		if p.accept(lexer.KwAs) {
			at, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			a = string(at.Value)
		}
		items = append(items, ast.UseItem{Name: n.Value, Alias: a, Kind: kind})
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.UseStmt{Kind: kind, Items: items, Span: tok.Span}, nil
}

func (p *Parser) parseConstDecl() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var entries []ast.ConstDeclEntry
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
		entries = append(entries, ast.ConstDeclEntry{Name: string(name.Value), Value: value})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ConstDecl{Consts: entries, Span: tok.Span}, nil
}

// --- functions / params ---------------------------------------------------

func (p *Parser) parseFunctionDecl() (ast.Statement, *ParseError) {
	attrs := p.state.takeAttributes()
	tok := p.ts.Next()
	byRef := p.accept(lexer.Amp)
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var retType ast.Type
	if p.accept(lexer.Colon) {
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	p.state.pushScope(Scope{Kind: ScopeFunction, Name: string(name.Value)})
	body, err := p.parseBlock()
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Name: string(name.Value), ByRef: byRef, Params: params, ReturnType: retType,
		Body: body, Attributes: attrs, Span: tok.Span,
	}, nil
}

// parseParamList parses the parameter list starting just after the
// opening `(`, consuming the closing `)`.
func (p *Parser) parseParamList() ([]*ast.Param, *ParseError) {
	var params []*ast.Param
	for !p.at(lexer.RightParen) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParam() (*ast.Param, *ParseError) {
	start := p.ts.Current().Span
	attrs, err := p.parseAttributeGroups()
	if err != nil {
		return nil, err
	}

	var promotion []ast.Modifier
	for {
		if m, ok := modifierKeywords[p.ts.Current().Kind]; ok && p.ts.Current().Kind != lexer.KwStatic {
			promotion = append(promotion, m)
			p.ts.Next()
			continue
		}
		break
	}
	if len(promotion) > 0 {
		cur, _ := p.state.currentScope()
		if cur.Kind != ScopeMethod || cur.Name != "__construct" {
			return nil, &ParseError{Kind: PromotedPropertyOutsideConstructor, Span: start}
		}
		for _, m := range cur.Modifiers {
			if m == ast.ModAbstract {
				return nil, &ParseError{Kind: PromotedPropertyOnAbstractConstructor, Span: start}
			}
		}
		if err := validateModifiers(promotion, targetPromotedProperty, start, false, false); err != nil {
			return nil, err
		}
	}

	var typ ast.Type
	if p.typeStartsAt(p.ts.Current()) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
	}
	byRef := p.accept(lexer.Amp)
	variadic := p.accept(lexer.Ellipsis)
	v, err := p.expect(lexer.Variable)
	if err != nil {
		return nil, err
	}
	var def ast.Expression
	if p.accept(lexer.Assign) {
		d, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		def = d
	}
	if len(promotion) > 0 && variadic {
		return nil, &ParseError{Kind: VariadicPromotedProperty, Span: start}
	}
	return &ast.Param{
		Name: string(v.Value), Type: typ, Default: def, ByRef: byRef, Variadic: variadic,
		Promotion: promotion, Attributes: attrs, Span: start,
	}, nil
}

// parseAttributeGroups consumes every leading `#[...]` group at the
// current position, returning nil (not an empty slice) when none are
// present so callers can tell "no attributes here" from "parsed zero
// entries".
func (p *Parser) parseAttributeGroups() ([]ast.AttributeGroup, *ParseError) {
	if !p.at(lexer.AttributeStart) {
		return nil, nil
	}
	var groups []ast.AttributeGroup
	for p.at(lexer.AttributeStart) {
		tok := p.ts.Next()
		var attrs []ast.Attribute
		for !p.at(lexer.RightBracket) {
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			var args []ast.Argument
			if p.at(lexer.LeftParen) {
				a, _, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				args = a
			}
			attrs = append(attrs, ast.Attribute{Name: name, Args: args})
			if !p.accept(lexer.Comma) {
				break
			}
		}
		if _, err := p.expect(lexer.RightBracket); err != nil {
			return nil, err
		}
		groups = append(groups, ast.AttributeGroup{Attributes: attrs, Span: tok.Span})
	}
	return groups, nil
}

// --- control flow -----------------------------------------------------------

func (p *Parser) parseIf() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}

	if p.accept(lexer.Colon) {
		then, err := p.parseStatementsUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEndif)
		if err != nil {
			return nil, err
		}
		stmt := &ast.IfStmt{Cond: cond, Then: blockOf(then), Span: tok.Span}
		for p.at(lexer.KwElseif) {
			p.ts.Next()
			if _, err := p.expect(lexer.LeftParen); err != nil {
				return nil, err
			}
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RightParen); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Colon); err != nil {
				return nil, err
			}
			body, err := p.parseStatementsUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEndif)
			if err != nil {
				return nil, err
			}
			stmt.Elifs = append(stmt.Elifs, ast.IfBranch{Cond: c, Body: blockOf(body)})
		}
		if p.accept(lexer.KwElse) {
			if _, err := p.expect(lexer.Colon); err != nil {
				return nil, err
			}
			body, err := p.parseStatementsUntil(lexer.KwEndif)
			if err != nil {
				return nil, err
			}
			stmt.Else = blockOf(body)
		}
		if _, err := p.expect(lexer.KwEndif); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return stmt, nil
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then, Span: tok.Span}
	for p.at(lexer.KwElseif) {
		p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		c, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, ast.IfBranch{Cond: c, Body: body})
	}
	if p.accept(lexer.KwElse) {
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	if p.accept(lexer.Colon) {
		body, err := p.parseStatementsUntil(lexer.KwEndwhile)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwEndwhile); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: blockOf(body), Span: tok.Span}, nil
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseDoWhile() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Span: tok.Span}, nil
}

func (p *Parser) parseExprList(end lexer.TokenKind) ([]ast.Expression, *ParseError) {
	var exprs []ast.Expression
	if p.at(end) {
		return exprs, nil
	}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	return exprs, nil
}

func (p *Parser) parseFor() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	init, err := p.parseExprList(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	cond, err := p.parseExprList(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	step, err := p.parseExprList(lexer.RightParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	if p.accept(lexer.Colon) {
		body, err := p.parseStatementsUntil(lexer.KwEndfor)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwEndfor); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: blockOf(body), Span: tok.Span}, nil
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseForeach() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwAs); err != nil {
		return nil, err
	}
	byRef := p.accept(lexer.Amp)
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var key, value ast.Expression
	value = first
	if p.accept(lexer.DoubleArrow) {
		key = first
		byRef = p.accept(lexer.Amp)
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	if p.accept(lexer.Colon) {
		body, err := p.parseStatementsUntil(lexer.KwEndforeach)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwEndforeach); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.ForeachStmt{Iterable: iterable, Key: key, Value: value, ByRef: byRef, Body: blockOf(body), Span: tok.Span}, nil
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForeachStmt{Iterable: iterable, Key: key, Value: value, ByRef: byRef, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseSwitch() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	alt := false
	if p.accept(lexer.Colon) {
		alt = true
	} else if _, err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	p.accept(lexer.Semicolon)

	var cases []ast.SwitchCase
	endKind := lexer.RightBrace
	if alt {
		endKind = lexer.KwEndswitch
	}
	for !p.at(endKind) {
		var cond ast.Expression
		if p.accept(lexer.KwDefault) {
			// cond stays nil
		} else {
			if _, err := p.expect(lexer.KwCase); err != nil {
				return nil, err
			}
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			cond = c
		}
		if !p.accept(lexer.Colon) {
			if _, err := p.expect(lexer.Semicolon); err != nil {
				return nil, err
			}
		}
		var body []ast.Statement
		for !p.at(lexer.KwCase) && !p.at(lexer.KwDefault) && !p.at(endKind) {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
		cases = append(cases, ast.SwitchCase{Cond: cond, Body: body})
	}
	if alt {
		if _, err := p.expect(lexer.KwEndswitch); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
	}
	return &ast.SwitchStmt{Subject: subject, Cases: cases, Span: tok.Span}, nil
}

func (p *Parser) parseTry() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []ast.CatchClause
	for p.at(lexer.KwCatch) {
		cTok := p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		var types []*ast.Name
		for {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			types = append(types, n)
			if !p.accept(lexer.Pipe) {
				break
			}
		}
		var varName string
		if p.at(lexer.Variable) {
			v := p.ts.Next()
			varName = string(v.Value)
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		cBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchClause{Types: types, Var: varName, Body: cBody, Span: cTok.Span})
	}
	var finally *ast.BlockStmt
	if p.accept(lexer.KwFinally) {
		f, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		finally = f
	}
	if len(catches) == 0 && finally == nil {
		return nil, &ParseError{Kind: TryWithoutCatchOrFinally, Span: tok.Span}
	}
	return &ast.TryStmt{Body: body, Catches: catches, Finally: finally, Span: tok.Span}, nil
}

func (p *Parser) parseEcho() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var values []ast.Expression
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.EchoStmt{Values: values}, nil
}

func (p *Parser) parseReturn() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var value ast.Expression
	if !p.at(lexer.Semicolon) && !p.at(lexer.CloseTag) && !p.ts.IsEOF() {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Span: tok.Span}, nil
}

func (p *Parser) parseBreakContinue(isBreak bool) (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var level ast.Expression
	if !p.at(lexer.Semicolon) && !p.at(lexer.CloseTag) && !p.ts.IsEOF() {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		level = v
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	if isBreak {
		return &ast.BreakStmt{Level: level, Span: tok.Span}, nil
	}
	return &ast.ContinueStmt{Level: level, Span: tok.Span}, nil
}

func (p *Parser) parseGoto() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.GotoStmt{Label: string(name.Value), Span: tok.Span}, nil
}

func (p *Parser) parseLabel() (ast.Statement, *ParseError) {
	name := p.ts.Next()
	p.ts.Next() // `:`
	return &ast.LabelStmt{Name: string(name.Value), Span: name.Span}, nil
}

func (p *Parser) parseGlobal() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var vars []*ast.SimpleVariable
	for {
		v, err := p.expect(lexer.Variable)
		if err != nil {
			return nil, err
		}
		vars = append(vars, &ast.SimpleVariable{Name: string(v.Value), Span: v.Span})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.GlobalStmt{Vars: vars, Span: tok.Span}, nil
}

func (p *Parser) parseStaticVarDecl() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	var vars []ast.StaticVar
	for {
		v, err := p.expect(lexer.Variable)
		if err != nil {
			return nil, err
		}
		var def ast.Expression
		if p.accept(lexer.Assign) {
			d, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			def = d
		}
		vars = append(vars, ast.StaticVar{Name: string(v.Value), Default: def})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.StaticVarStmt{Vars: vars, Span: tok.Span}, nil
}

func (p *Parser) parseDeclare() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	var directives []ast.DeclareDirective
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
		directives = append(directives, ast.DeclareDirective{Name: string(name.Value), Value: value})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	var body ast.Statement
	switch {
	case p.at(lexer.LeftBrace):
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = b
	case p.accept(lexer.Colon):
		stmts, err := p.parseStatementsUntil(lexer.KwEnddeclare)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwEnddeclare); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		body = blockOf(stmts)
	default:
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	}
	return &ast.DeclareStmt{Directives: directives, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseUnset() (ast.Statement, *ParseError) {
	tok := p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	var vars []ast.Expression
	for !p.at(lexer.RightParen) {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.UnsetStmt{Vars: vars, Span: tok.Span}, nil
}

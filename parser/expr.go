package parser

import (
	"github.com/wudi/phlex/ast"
	"github.com/wudi/phlex/lexer"
)

var castKinds = map[lexer.TokenKind]ast.CastKind{
	lexer.CastInt:     ast.CastToInt,
	lexer.CastInteger: ast.CastToInt,
	lexer.CastBool:    ast.CastToBool,
	lexer.CastBoolean: ast.CastToBool,
	lexer.CastFloat:   ast.CastToFloat,
	lexer.CastDouble:  ast.CastToFloat,
	lexer.CastReal:    ast.CastToFloat,
	lexer.CastString:  ast.CastToString,
	lexer.CastBinary:  ast.CastToBinary,
	lexer.CastArray:   ast.CastToArray,
	lexer.CastObject:  ast.CastToObject,
	lexer.CastUnset:   ast.CastToUnset,
}

var magicConstKinds = map[lexer.TokenKind]ast.MagicConstKind{
	lexer.MagicLine:      ast.MagicConstLine,
	lexer.MagicFile:      ast.MagicConstFile,
	lexer.MagicDir:       ast.MagicConstDir,
	lexer.MagicClass:     ast.MagicConstClass,
	lexer.MagicTrait:     ast.MagicConstTrait,
	lexer.MagicMethod:    ast.MagicConstMethod,
	lexer.MagicFunction:  ast.MagicConstFunction,
	lexer.MagicNamespace: ast.MagicConstNamespace,
}

var includeKinds = map[lexer.TokenKind]ast.IncludeKind{
	lexer.KwInclude:     ast.IncludeInclude,
	lexer.KwIncludeOnce: ast.IncludeIncludeOnce,
	lexer.KwRequire:     ast.IncludeRequire,
	lexer.KwRequireOnce: ast.IncludeRequireOnce,
}

var compoundAssignOps = map[lexer.TokenKind]ast.AssignmentOp{
	lexer.PlusEqual:     ast.OpAssignAdd,
	lexer.MinusEqual:    ast.OpAssignSub,
	lexer.StarEqual:     ast.OpAssignMul,
	lexer.SlashEqual:    ast.OpAssignDiv,
	lexer.PercentEqual:  ast.OpAssignMod,
	lexer.PowEqual:      ast.OpAssignPow,
	lexer.DotEqual:      ast.OpAssignConcat,
	lexer.AmpEqual:      ast.OpAssignBitAnd,
	lexer.PipeEqual:     ast.OpAssignBitOr,
	lexer.CaretEqual:    ast.OpAssignBitXor,
	lexer.ShlEqual:      ast.OpAssignShl,
	lexer.ShrEqual:      ast.OpAssignShr,
	lexer.CoalesceEqual: ast.OpAssignCoalesce,
}

// unaryOperandFloor is the minPrec used when parsing the operand of a
// prefix unary/cast operator: high enough to keep `*`/`+`-style binary
// operators out, low enough to let `**` (PHP's one tighter-than-unary
// operator) bind first, matching `-2 ** 2 == -4`.
const unaryOperandFloor = 19

// notOperandFloor is `!`'s operand floor: looser than unaryOperandFloor
// so `instanceof` still binds into the operand of `!`.
const notOperandFloor = 18

// parseExpression parses a full expression at the lowest precedence.
func (p *Parser) parseExpression() (ast.Expression, *ParseError) {
	return p.parseExpr(lowestPrecedence)
}

// parseExpr is the precedence-climbing core (spec.md §4.8). lastPrec
// tracks the precedence of the most recently applied infix operator in
// this frame so a second operator at the same AssocNone level (chained
// comparisons, chained ternaries) is rejected instead of silently
// associating.
func (p *Parser) parseExpr(minPrec int) (ast.Expression, *ParseError) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	left, err = p.parsePostfix(left)
	if err != nil {
		return nil, err
	}

	lastPrec := -1
	for {
		tok := p.ts.Current()
		lvl, ok := lookupInfix(tok.Kind)
		if !ok || lvl.prec < minPrec {
			return left, nil
		}
		if lvl.assoc == AssocNone && lvl.prec == lastPrec {
			return nil, p.unexpected()
		}

		switch tok.Kind {
		case lexer.Question:
			p.ts.Next()
			var then ast.Expression
			if !p.at(lexer.Colon) {
				then, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.Colon); err != nil {
				return nil, err
			}
			elseExpr, err := p.parseExpr(lvl.prec + 1)
			if err != nil {
				return nil, err
			}
			left = &ast.TernaryExpr{Cond: left, Then: then, Else: elseExpr}

		case lexer.ShortTernary:
			p.ts.Next()
			elseExpr, err := p.parseExpr(lvl.prec + 1)
			if err != nil {
				return nil, err
			}
			left = &ast.TernaryExpr{Cond: left, Else: elseExpr}

		case lexer.KwInstanceof:
			p.ts.Next()
			class, err := p.parseInstanceofClass()
			if err != nil {
				return nil, err
			}
			left = &ast.InstanceofExpr{Subject: left, Class: class}

		case lexer.Assign:
			p.ts.Next()
			byRef := p.accept(lexer.Amp)
			value, err := p.parseExpr(lvl.prec)
			if err != nil {
				return nil, err
			}
			left = &ast.AssignmentExpr{Op: ast.OpAssign, ByRef: byRef, Target: left, Value: value}

		default:
			if op, ok := compoundAssignOps[tok.Kind]; ok {
				p.ts.Next()
				value, err := p.parseExpr(lvl.prec)
				if err != nil {
					return nil, err
				}
				left = &ast.AssignmentExpr{Op: op, Target: left, Value: value}
				break
			}

			nextMin := lvl.prec + 1
			if lvl.assoc == AssocRight {
				nextMin = lvl.prec
			}
			p.ts.Next()
			right, err := p.parseExpr(nextMin)
			if err != nil {
				return nil, err
			}
			left = buildBinary(tok.Kind, left, right)
		}
		lastPrec = lvl.prec
	}
}

func buildBinary(kind lexer.TokenKind, left, right ast.Expression) ast.Expression {
	switch kind {
	case lexer.KwOr:
		return &ast.LogicalExpr{Op: ast.OpLogicalOr, Left: left, Right: right}
	case lexer.KwXor:
		return &ast.LogicalExpr{Op: ast.OpLogicalXor, Left: left, Right: right}
	case lexer.KwAnd:
		return &ast.LogicalExpr{Op: ast.OpLogicalAnd, Left: left, Right: right}
	case lexer.BoolOr:
		return &ast.LogicalExpr{Op: ast.OpLogicalOr, Left: left, Right: right}
	case lexer.BoolAnd:
		return &ast.LogicalExpr{Op: ast.OpLogicalAnd, Left: left, Right: right}
	case lexer.Coalesce:
		return &ast.CoalesceExpr{Left: left, Right: right}
	case lexer.Pipe:
		return &ast.BitwiseExpr{Op: ast.OpBitOr, Left: left, Right: right}
	case lexer.Caret:
		return &ast.BitwiseExpr{Op: ast.OpBitXor, Left: left, Right: right}
	case lexer.Amp:
		return &ast.BitwiseExpr{Op: ast.OpBitAnd, Left: left, Right: right}
	case lexer.Shl:
		return &ast.BitwiseExpr{Op: ast.OpShl, Left: left, Right: right}
	case lexer.Shr:
		return &ast.BitwiseExpr{Op: ast.OpShr, Left: left, Right: right}
	case lexer.Equal:
		return &ast.ComparisonExpr{Op: ast.OpEqual, Left: left, Right: right}
	case lexer.Identical:
		return &ast.ComparisonExpr{Op: ast.OpIdentical, Left: left, Right: right}
	case lexer.NotEqual:
		return &ast.ComparisonExpr{Op: ast.OpNotEqual, Left: left, Right: right}
	case lexer.AltNotEqual:
		return &ast.ComparisonExpr{Op: ast.OpAltNotEqual, Left: left, Right: right}
	case lexer.NotIdentical:
		return &ast.ComparisonExpr{Op: ast.OpNotIdentical, Left: left, Right: right}
	case lexer.Spaceship:
		return &ast.ComparisonExpr{Op: ast.OpSpaceship, Left: left, Right: right}
	case lexer.Less:
		return &ast.ComparisonExpr{Op: ast.OpLess, Left: left, Right: right}
	case lexer.Greater:
		return &ast.ComparisonExpr{Op: ast.OpGreater, Left: left, Right: right}
	case lexer.LessEqual:
		return &ast.ComparisonExpr{Op: ast.OpLessEqual, Left: left, Right: right}
	case lexer.GreaterEqual:
		return &ast.ComparisonExpr{Op: ast.OpGreaterEqual, Left: left, Right: right}
	case lexer.Plus:
		return &ast.ArithmeticExpr{Op: ast.OpAdd, Left: left, Right: right}
	case lexer.Minus:
		return &ast.ArithmeticExpr{Op: ast.OpSub, Left: left, Right: right}
	case lexer.Dot:
		return &ast.ConcatExpr{Left: left, Right: right}
	case lexer.Star:
		return &ast.ArithmeticExpr{Op: ast.OpMul, Left: left, Right: right}
	case lexer.Slash:
		return &ast.ArithmeticExpr{Op: ast.OpDiv, Left: left, Right: right}
	case lexer.Percent:
		return &ast.ArithmeticExpr{Op: ast.OpMod, Left: left, Right: right}
	case lexer.Pow:
		return &ast.ArithmeticExpr{Op: ast.OpPow, Left: left, Right: right}
	}
	return nil
}

func (p *Parser) isNameStart(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier, lexer.KwSelf, lexer.KwParent, lexer.KwStatic:
		return true
	}
	return false
}

func (p *Parser) parseName() (*ast.Name, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.Identifier:
		p.ts.Next()
		return &ast.Name{Value: string(tok.Value), Qualification: ast.Unqualified, Span: tok.Span}, nil
	case lexer.QualifiedIdentifier:
		p.ts.Next()
		return &ast.Name{Value: string(tok.Value), Qualification: ast.Qualified, Span: tok.Span}, nil
	case lexer.FullyQualifiedIdentifier:
		p.ts.Next()
		return &ast.Name{Value: string(tok.Value), Qualification: ast.FullyQualified, Span: tok.Span}, nil
	case lexer.KwSelf:
		p.ts.Next()
		return &ast.Name{Value: "self", Span: tok.Span}, nil
	case lexer.KwParent:
		p.ts.Next()
		return &ast.Name{Value: "parent", Span: tok.Span}, nil
	case lexer.KwStatic:
		p.ts.Next()
		return &ast.Name{Value: "static", Span: tok.Span}, nil
	}
	return nil, &ParseError{Kind: ExpectedToken, Span: tok.Span, Expected: []string{"a name"}, Actual: describeToken(tok)}
}

func (p *Parser) parseInstanceofClass() (ast.Node, *ParseError) {
	if p.isNameStart(p.ts.Current()) {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return p.parsePostfixNode(name)
	}
	expr, err := p.parseExpr(unaryOperandFloor)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// parsePostfixNode runs the postfix chain over a Name used as the start
// of an expression (e.g. `$x instanceof Foo::class`).
func (p *Parser) parsePostfixNode(name *ast.Name) (ast.Expression, *ParseError) {
	var base ast.Expression = &ast.ConstFetchExpr{Name: name}
	return p.parsePostfix(base)
}

// parsePrefix dispatches on the current token to build the leaf or
// prefix-operator expression that the climbing loop in parseExpr then
// extends with postfix and infix continuations.
func (p *Parser) parsePrefix() (ast.Expression, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.LiteralInteger:
		p.ts.Next()
		return &ast.IntegerLiteral{Value: tok.Int, Raw: string(tok.Value), Span: tok.Span}, nil
	case lexer.LiteralFloat:
		p.ts.Next()
		return &ast.FloatLiteral{Value: tok.Float, Raw: string(tok.Value), Span: tok.Span}, nil
	case lexer.ConstantString:
		p.ts.Next()
		return &ast.StringLiteral{Value: tok.Value.Bytes(), Span: tok.Span}, nil
	case lexer.StringPart:
		return p.parseInterpolatedBody(ast.StringDoubleQuoted, tok.Span, lexer.DoubleQuote)
	case lexer.Backtick:
		p.ts.Next()
		return p.parseInterpolatedBody(ast.StringShellExec, tok.Span, lexer.Backtick)
	case lexer.StartHeredoc:
		p.ts.Next()
		body, err := p.parseInterpolatedBody(ast.StringHeredoc, tok.Span, lexer.EndHeredoc)
		if err != nil {
			return nil, err
		}
		body.Label = string(tok.Value)
		return body, nil
	case lexer.KwTrue:
		p.ts.Next()
		return &ast.BoolLiteral{Value: true, Span: tok.Span}, nil
	case lexer.KwFalse:
		p.ts.Next()
		return &ast.BoolLiteral{Value: false, Span: tok.Span}, nil
	case lexer.KwNull:
		p.ts.Next()
		return &ast.NullLiteral{Span: tok.Span}, nil
	case lexer.Variable:
		p.ts.Next()
		return &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}, nil
	case lexer.Dollar:
		p.ts.Next()
		inner, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.VariableVariable{Inner: inner, Span: tok.Span}, nil
	case lexer.DollarLeftBrace:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		return &ast.BracedVariable{Inner: inner, Span: tok.Span}, nil
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier, lexer.KwSelf, lexer.KwParent:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &ast.ConstFetchExpr{Name: name}, nil
	case lexer.KwStatic:
		if p.ts.Peek().Kind == lexer.KwFunction {
			p.ts.Next()
			return p.parseClosure(tok, true)
		}
		if p.ts.Peek().Kind == lexer.KwFn {
			p.ts.Next()
			return p.parseArrowFunction(tok, true)
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &ast.ConstFetchExpr{Name: name}, nil
	case lexer.MagicLine, lexer.MagicFile, lexer.MagicDir, lexer.MagicClass, lexer.MagicTrait, lexer.MagicMethod, lexer.MagicFunction, lexer.MagicNamespace:
		p.ts.Next()
		return &ast.MagicConstExpr{Kind: magicConstKinds[tok.Kind], Span: tok.Span}, nil
	case lexer.Plus:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryArithmeticExpr{Op: ast.OpUnaryPlus, Operand: operand, Span: tok.Span}, nil
	case lexer.Minus:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryArithmeticExpr{Op: ast.OpUnaryMinus, Operand: operand, Span: tok.Span}, nil
	case lexer.Bang:
		p.ts.Next()
		operand, err := p.parseExpr(notOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalNotExpr{Operand: operand, Span: tok.Span}, nil
	case lexer.Tilde:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.BitwiseNotExpr{Operand: operand, Span: tok.Span}, nil
	case lexer.Increment, lexer.Decrement:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		op := ast.OpIncrement
		if tok.Kind == lexer.Decrement {
			op = ast.OpDecrement
		}
		return &ast.IncDecExpr{Op: op, Prefix: true, Operand: operand, Span: tok.Span}, nil
	case lexer.CastInt, lexer.CastInteger, lexer.CastBool, lexer.CastBoolean, lexer.CastFloat, lexer.CastDouble,
		lexer.CastReal, lexer.CastString, lexer.CastBinary, lexer.CastArray, lexer.CastObject, lexer.CastUnset:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Kind: castKinds[tok.Kind], Operand: operand, Span: tok.Span}, nil
	case lexer.KwClone:
		p.ts.Next()
		operand, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.CloneExpr{Value: operand, Span: tok.Span}, nil
	case lexer.KwNew:
		return p.parseNew(tok)
	case lexer.KwThrow:
		p.ts.Next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ThrowExpr{Value: value, Span: tok.Span}, nil
	case lexer.KwYield:
		return p.parseYield(tok)
	case lexer.KwMatch:
		return p.parseMatch(tok)
	case lexer.KwFunction:
		return p.parseClosure(tok, false)
	case lexer.KwFn:
		return p.parseArrowFunction(tok, false)
	case lexer.KwInclude, lexer.KwIncludeOnce, lexer.KwRequire, lexer.KwRequireOnce:
		p.ts.Next()
		path, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.IncludeExpr{Kind: includeKinds[tok.Kind], Path: path, Span: tok.Span}, nil
	case lexer.KwPrint:
		p.ts.Next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PrintExpr{Value: value, Span: tok.Span}, nil
	case lexer.KwIsset:
		return p.parseIsset(tok)
	case lexer.KwEmpty:
		p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return &ast.EmptyExpr{Value: value, Span: tok.Span}, nil
	case lexer.KwEval:
		p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		code, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return &ast.EvalExpr{Code: code, Span: tok.Span}, nil
	case lexer.KwExit:
		return p.parseExit(tok)
	case lexer.LeftBracket:
		p.ts.Next()
		items, err := p.parseArrayItems(lexer.RightBracket)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayExpr{Items: items, Span: tok.Span}, nil
	case lexer.KwArray:
		p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		items, err := p.parseArrayItems(lexer.RightParen)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return &ast.ArrayExpr{Items: items, Span: tok.Span}, nil
	case lexer.KwList:
		p.ts.Next()
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		items, err := p.parseArrayItems(lexer.RightParen)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return &ast.ListExpr{Items: items, Span: tok.Span}, nil
	case lexer.LeftParen:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected()
}

// parsePostfix extends left with any run of `-> ?-> :: [ ] ( ) ++ --`
// continuations (spec.md §4.8's postfix chain).
func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, *ParseError) {
	for {
		tok := p.ts.Current()
		switch tok.Kind {
		case lexer.Arrow, lexer.QuestionArrow:
			nullsafe := tok.Kind == lexer.QuestionArrow
			p.ts.Next()
			member, err := p.parseMemberName()
			if err != nil {
				return nil, err
			}
			if p.at(lexer.LeftParen) {
				args, isFCC, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				if isFCC {
					left = &ast.FirstClassCallableExpr{
						Target: &ast.MethodCallExpr{Object: left, Method: member, Nullsafe: nullsafe},
						Span:   tok.Span,
					}
				} else {
					left = &ast.MethodCallExpr{Object: left, Method: member, Args: args, Nullsafe: nullsafe}
				}
			} else {
				left = &ast.PropertyFetchExpr{Object: left, Property: member, Nullsafe: nullsafe}
			}
		case lexer.DoubleColon:
			p.ts.Next()
			member, kind, err := p.parseStaticMemberNode()
			if err != nil {
				return nil, err
			}
			switch {
			case kind != "class" && p.at(lexer.LeftParen):
				args, isFCC, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				if isFCC {
					left = &ast.FirstClassCallableExpr{
						Target: &ast.StaticCallExpr{Class: left, Method: member},
						Span:   tok.Span,
					}
				} else {
					left = &ast.StaticCallExpr{Class: left, Method: member, Args: args}
				}
			case kind == "var":
				left = &ast.StaticPropertyFetchExpr{Class: left, Property: member}
			default:
				left = &ast.ClassConstFetchExpr{Class: left, Const: member}
			}
		case lexer.LeftBracket:
			p.ts.Next()
			var idx ast.Expression
			if !p.at(lexer.RightBracket) {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				idx = v
			}
			if _, err := p.expect(lexer.RightBracket); err != nil {
				return nil, err
			}
			left = &ast.SubscriptExpr{Array: left, Index: idx, Span: tok.Span}
		case lexer.LeftParen:
			args, isFCC, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if isFCC {
				left = &ast.FirstClassCallableExpr{Target: &ast.CallExpr{Callee: left}, Span: tok.Span}
			} else {
				left = &ast.CallExpr{Callee: left, Args: args}
			}
		case lexer.Increment, lexer.Decrement:
			p.ts.Next()
			op := ast.OpIncrement
			if tok.Kind == lexer.Decrement {
				op = ast.OpDecrement
			}
			left = &ast.IncDecExpr{Op: op, Prefix: false, Operand: left, Span: tok.Span}
		default:
			return left, nil
		}
	}
}

// parseMemberName parses the name following `->`/`?->`: a bare
// identifier, a computed `{expr}` name, or a variable/variable-variable
// name (`$obj->$prop`, `$obj->{$prop}`).
func (p *Parser) parseMemberName() (ast.Node, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.Identifier:
		p.ts.Next()
		return &ast.Name{Value: string(tok.Value), Span: tok.Span}, nil
	case lexer.Variable:
		p.ts.Next()
		return &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}, nil
	case lexer.Dollar:
		p.ts.Next()
		inner, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		return &ast.VariableVariable{Inner: inner, Span: tok.Span}, nil
	case lexer.LeftBrace:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected()
}

// parseStaticMemberNode parses the name following `::`. kind is "class"
// for the `class` pseudo-constant, "var" for a static property name, or
// "name" for a method/constant name — callers use it to decide which
// node shape to build without a type switch.
func (p *Parser) parseStaticMemberNode() (ast.Node, string, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.Variable:
		p.ts.Next()
		return &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}, "var", nil
	case lexer.DollarLeftBrace:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, "", err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, "", err
		}
		return inner, "var", nil
	case lexer.LeftBrace:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, "", err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, "", err
		}
		return inner, "name", nil
	case lexer.KwClass:
		p.ts.Next()
		return &ast.Name{Value: "class", Span: tok.Span}, "class", nil
	case lexer.Identifier:
		p.ts.Next()
		return &ast.Name{Value: string(tok.Value), Span: tok.Span}, "name", nil
	case lexer.KwStatic, lexer.KwSelf, lexer.KwParent:
		name, err := p.parseName()
		if err != nil {
			return nil, "", err
		}
		return name, "name", nil
	}
	return nil, "", p.unexpected()
}

// parseArgs parses a parenthesized argument list, starting at the
// current `(`. Returns (nil, true, nil) for the first-class-callable
// syntax `(...)`.
func (p *Parser) parseArgs() ([]ast.Argument, bool, *ParseError) {
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, false, err
	}
	if p.at(lexer.Ellipsis) && p.ts.Peek().Kind == lexer.RightParen {
		p.ts.Next()
		p.ts.Next()
		return nil, true, nil
	}
	var args []ast.Argument
	sawNamed := false
	for !p.at(lexer.RightParen) {
		var name string
		isNamed := false
		if p.at(lexer.Identifier) && p.ts.Peek().Kind == lexer.Colon {
			idTok := p.ts.Next()
			p.ts.Next()
			name = string(idTok.Value)
			isNamed = true
		}
		if !isNamed && sawNamed {
			return nil, false, &ParseError{
				Kind:     CannotUsePositionalArgumentAfterNamedArgument,
				Span:     p.ts.Current().Span,
				ArgIndex: len(args) + 1,
			}
		}
		if isNamed {
			sawNamed = true
		}
		spread := p.accept(lexer.Ellipsis)
		byRef := p.accept(lexer.Amp)
		value, err := p.parseExpression()
		if err != nil {
			return nil, false, err
		}
		args = append(args, ast.Argument{Name: name, Value: value, Spread: spread, ByRef: byRef})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, false, err
	}
	return args, false, nil
}

func (p *Parser) parseArrayItems(closeKind lexer.TokenKind) ([]ast.ArrayItem, *ParseError) {
	var items []ast.ArrayItem
	for !p.at(closeKind) {
		item, err := p.parseArrayItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	return items, nil
}

func (p *Parser) parseArrayItem() (ast.ArrayItem, *ParseError) {
	if p.accept(lexer.Ellipsis) {
		value, err := p.parseExpression()
		if err != nil {
			return ast.ArrayItem{}, err
		}
		return ast.ArrayItem{Value: value, Spread: true}, nil
	}
	byRefFirst := p.accept(lexer.Amp)
	first, err := p.parseExpression()
	if err != nil {
		return ast.ArrayItem{}, err
	}
	if p.accept(lexer.DoubleArrow) {
		byRef := p.accept(lexer.Amp)
		value, err := p.parseExpression()
		if err != nil {
			return ast.ArrayItem{}, err
		}
		return ast.ArrayItem{Key: first, Value: value, ByRef: byRef}, nil
	}
	return ast.ArrayItem{Value: first, ByRef: byRefFirst}, nil
}

func (p *Parser) parseNew(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
	if p.at(lexer.KwClass) {
		return p.parseAnonClass(tok)
	}
	class, err := p.parseNewClassRef()
	if err != nil {
		return nil, err
	}
	var args []ast.Argument
	if p.at(lexer.LeftParen) {
		a, isFCC, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if isFCC {
			return nil, &ParseError{Kind: UnexpectedToken, Span: tok.Span, Actual: "(...)"}
		}
		args = a
	}
	return &ast.NewExpr{Class: class, Args: args, Span: tok.Span}, nil
}

// parseNewClassRef parses the class reference of a `new` expression: a
// name, or a variable-rooted chain of property/static/subscript access.
// It deliberately stops before a trailing `(`, which belongs to `new`'s
// own argument list rather than a call on the reference.
func (p *Parser) parseNewClassRef() (ast.Node, *ParseError) {
	if p.isNameStart(p.ts.Current()) {
		return p.parseName()
	}
	tok := p.ts.Current()
	var base ast.Expression
	switch tok.Kind {
	case lexer.Variable:
		p.ts.Next()
		base = &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}
	case lexer.Dollar:
		p.ts.Next()
		inner, err := p.parseExpr(unaryOperandFloor)
		if err != nil {
			return nil, err
		}
		base = &ast.VariableVariable{Inner: inner, Span: tok.Span}
	case lexer.DollarLeftBrace:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		base = &ast.BracedVariable{Inner: inner, Span: tok.Span}
	case lexer.LeftParen:
		p.ts.Next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
		base = inner
	default:
		return nil, p.unexpected()
	}
	for {
		cur := p.ts.Current()
		switch cur.Kind {
		case lexer.Arrow, lexer.QuestionArrow:
			nullsafe := cur.Kind == lexer.QuestionArrow
			p.ts.Next()
			member, err := p.parseMemberName()
			if err != nil {
				return nil, err
			}
			base = &ast.PropertyFetchExpr{Object: base, Property: member, Nullsafe: nullsafe}
		case lexer.DoubleColon:
			p.ts.Next()
			member, kind, err := p.parseStaticMemberNode()
			if err != nil {
				return nil, err
			}
			if kind == "var" {
				base = &ast.StaticPropertyFetchExpr{Class: base, Property: member}
			} else {
				base = &ast.ClassConstFetchExpr{Class: base, Const: member}
			}
		case lexer.LeftBracket:
			p.ts.Next()
			var idx ast.Expression
			if !p.at(lexer.RightBracket) {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				idx = v
			}
			if _, err := p.expect(lexer.RightBracket); err != nil {
				return nil, err
			}
			base = &ast.SubscriptExpr{Array: base, Index: idx, Span: cur.Span}
		default:
			return base, nil
		}
	}
}

func (p *Parser) parseAnonClass(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
	var args []ast.Argument
	if p.at(lexer.LeftParen) {
		a, _, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		args = a
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
	attrs := p.state.takeAttributes()
	p.state.pushScope(Scope{Kind: ScopeClass})
	members, err := p.parseClassMembers()
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	anon := &ast.AnonClassExpr{Extends: extends, Implements: implements, Members: members, Attributes: attrs, Span: tok.Span}
	return &ast.NewExpr{Class: anon, Args: args, Span: tok.Span}, nil
}

// yieldExprEnds reports whether kind can only follow a bare `yield` with
// no value (spec.md §4.8: `yield` alone is a valid expression).
func yieldExprEnds(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.Semicolon, lexer.RightParen, lexer.RightBracket, lexer.RightBrace, lexer.Comma, lexer.EOF, lexer.CloseTag:
		return true
	}
	return false
}

func (p *Parser) parseYield(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
	if p.at(lexer.Identifier) && string(p.ts.Current().Value) == "from" {
		p.ts.Next()
		source, err := p.parseExpr(lowestPrecedence + 4)
		if err != nil {
			return nil, err
		}
		return &ast.YieldFromExpr{Source: source, Span: tok.Span}, nil
	}
	if yieldExprEnds(p.ts.Current().Kind) {
		return &ast.YieldExpr{Span: tok.Span}, nil
	}
	first, err := p.parseExpr(lowestPrecedence + 4)
	if err != nil {
		return nil, err
	}
	if p.accept(lexer.DoubleArrow) {
		value, err := p.parseExpr(lowestPrecedence + 4)
		if err != nil {
			return nil, err
		}
		return &ast.YieldExpr{Key: first, Value: value, Span: tok.Span}, nil
	}
	return &ast.YieldExpr{Value: first, Span: tok.Span}, nil
}

func (p *Parser) parseMatch(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
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
	if _, err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	for !p.at(lexer.RightBrace) {
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return &ast.MatchExpr{Subject: subject, Arms: arms, Span: tok.Span}, nil
}

func (p *Parser) parseMatchArm() (ast.MatchArm, *ParseError) {
	var conds []ast.Expression
	if p.accept(lexer.KwDefault) {
		// conds stays nil: the default arm.
	} else {
		for {
			c, err := p.parseExpression()
			if err != nil {
				return ast.MatchArm{}, err
			}
			conds = append(conds, c)
			if !p.accept(lexer.Comma) {
				break
			}
			if p.at(lexer.DoubleArrow) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.DoubleArrow); err != nil {
		return ast.MatchArm{}, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return ast.MatchArm{}, err
	}
	return ast.MatchArm{Conditions: conds, Body: body}, nil
}

func (p *Parser) parseClosure(tok lexer.Token, static bool) (ast.Expression, *ParseError) {
	p.ts.Next()
	byRef := p.accept(lexer.Amp)
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var uses []ast.ClosureUse
	if p.accept(lexer.KwUse) {
		if _, err := p.expect(lexer.LeftParen); err != nil {
			return nil, err
		}
		for !p.at(lexer.RightParen) {
			useByRef := p.accept(lexer.Amp)
			v, err := p.expect(lexer.Variable)
			if err != nil {
				return nil, err
			}
			uses = append(uses, ast.ClosureUse{Name: string(v.Value), ByRef: useByRef})
			if !p.accept(lexer.Comma) {
				break
			}
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
	}
	var retType ast.Type
	if p.accept(lexer.Colon) {
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	p.state.pushScope(Scope{Kind: ScopeFunction})
	body, err := p.parseBlockStatements()
	p.state.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.ClosureExpr{Static: static, ByRef: byRef, Params: params, Uses: uses, ReturnType: retType, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseArrowFunction(tok lexer.Token, static bool) (ast.Expression, *ParseError) {
	p.ts.Next()
	byRef := p.accept(lexer.Amp)
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
	if _, err := p.expect(lexer.DoubleArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(lowestPrecedence + 4)
	if err != nil {
		return nil, err
	}
	return &ast.ArrowFunctionExpr{Static: static, ByRef: byRef, Params: params, ReturnType: retType, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseIsset(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}
	var vars []ast.Expression
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if !p.accept(lexer.Comma) {
			break
		}
		if p.at(lexer.RightParen) {
			break
		}
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	return &ast.IssetExpr{Vars: vars, Span: tok.Span}, nil
}

func (p *Parser) parseExit(tok lexer.Token) (ast.Expression, *ParseError) {
	p.ts.Next()
	var value ast.Expression
	if p.accept(lexer.LeftParen) {
		if !p.at(lexer.RightParen) {
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, err := p.expect(lexer.RightParen); err != nil {
			return nil, err
		}
	}
	return &ast.ExitExpr{Value: value, Span: tok.Span}, nil
}

// parseInterpolatedBody consumes the StringPart/Variable/${/{ run that
// makes up the body of an interpolated double-quoted string, backtick
// string, or heredoc, up to and including closing.
func (p *Parser) parseInterpolatedBody(kind ast.StringKind, startSpan lexer.Span, closing lexer.TokenKind) (*ast.InterpolatedStringExpr, *ParseError) {
	var parts []ast.Expression
	for {
		tok := p.ts.Current()
		if tok.Kind == closing {
			p.ts.Next()
			return &ast.InterpolatedStringExpr{Kind: kind, Parts: parts, Span: startSpan}, nil
		}
		switch tok.Kind {
		case lexer.StringPart:
			p.ts.Next()
			parts = append(parts, &ast.StringLiteral{Value: tok.Value.Bytes(), Span: tok.Span})
		case lexer.Variable:
			p.ts.Next()
			var v ast.Expression = &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}
			v, err := p.parseInterpolationVarTail(v)
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
		case lexer.DollarLeftBrace:
			p.ts.Next()
			v, err := p.parseBracedVariable(tok.Span)
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
		case lexer.LeftBrace:
			p.ts.Next()
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RightBrace); err != nil {
				return nil, err
			}
			parts = append(parts, inner)
		default:
			return nil, p.unexpected()
		}
	}
}

// parseInterpolationVarTail handles the one-level subscript or
// property-fetch (itself optionally followed by one subscript) that can
// trail a bare `$var` inside an interpolated string, per the
// VarOffset/LookingForProperty lexer modes.
func (p *Parser) parseInterpolationVarTail(base ast.Expression) (ast.Expression, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.LeftBracket:
		p.ts.Next()
		idx, err := p.parseVarOffsetIndex()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightBracket); err != nil {
			return nil, err
		}
		return &ast.SubscriptExpr{Array: base, Index: idx, Span: tok.Span}, nil
	case lexer.Arrow, lexer.QuestionArrow:
		nullsafe := tok.Kind == lexer.QuestionArrow
		p.ts.Next()
		propTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		var result ast.Expression = &ast.PropertyFetchExpr{
			Object:   base,
			Property: &ast.Name{Value: string(propTok.Value), Span: propTok.Span},
			Nullsafe: nullsafe,
		}
		if p.at(lexer.LeftBracket) {
			lb := p.ts.Next()
			idx, err := p.parseVarOffsetIndex()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RightBracket); err != nil {
				return nil, err
			}
			result = &ast.SubscriptExpr{Array: result, Index: idx, Span: lb.Span}
		}
		return result, nil
	}
	return base, nil
}

// parseVarOffsetIndex parses the restricted index grammar the lexer's
// VarOffset mode accepts inside `$var[...]` interpolation: a bare
// integer (optionally negated), a bare variable, or a bare identifier
// treated as a string key — never an arbitrary expression.
func (p *Parser) parseVarOffsetIndex() (ast.Expression, *ParseError) {
	tok := p.ts.Current()
	switch tok.Kind {
	case lexer.Minus:
		p.ts.Next()
		num, err := p.expect(lexer.LiteralInteger)
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{Value: -num.Int, Raw: "-" + string(num.Value), Span: tok.Span}, nil
	case lexer.LiteralInteger:
		p.ts.Next()
		return &ast.IntegerLiteral{Value: tok.Int, Raw: string(tok.Value), Span: tok.Span}, nil
	case lexer.Variable:
		p.ts.Next()
		return &ast.SimpleVariable{Name: string(tok.Value), Span: tok.Span}, nil
	case lexer.Identifier:
		p.ts.Next()
		return &ast.StringLiteral{Value: tok.Value.Bytes(), Span: tok.Span}, nil
	}
	return nil, p.unexpected()
}

// parseBracedVariable parses the body of `${...}`: a bare name (the
// simple `${name}` form, equivalent to `$name`) or an arbitrary computed
// expression.
func (p *Parser) parseBracedVariable(startSpan lexer.Span) (*ast.BracedVariable, *ParseError) {
	if p.at(lexer.Identifier) && p.ts.Peek().Kind == lexer.RightBrace {
		idTok := p.ts.Next()
		if _, err := p.expect(lexer.RightBrace); err != nil {
			return nil, err
		}
		return &ast.BracedVariable{Inner: &ast.StringLiteral{Value: idTok.Value.Bytes(), Span: idTok.Span}, Span: startSpan}, nil
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return &ast.BracedVariable{Inner: inner, Span: startSpan}, nil
}

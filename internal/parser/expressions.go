package parser

import (
	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/token"
	"github.com/tesc-lang/tesc/internal/types"
)

// precClass assigns each binary operator to one of the four ascending
// precedence classes of spec.md §4.2.
func precClass(k token.Kind) int {
	switch k {
	case token.And, token.Or:
		return 1
	case token.Eq, token.NotEq, token.Greater, token.GreaterEq, token.Less, token.LessEq:
		return 2
	case token.Plus, token.Minus:
		return 3
	case token.Star, token.Slash, token.Percent:
		return 4
	default:
		return 0
	}
}

func isBinaryOp(k token.Kind) bool { return precClass(k) > 0 }

// parseExpression implements parse_expression(allow_binary, allow_cast)
// from spec.md §4.2: parse one primary, then fold in binary operators,
// casts, and (when allowBinary) a trailing assignment.
func (p *Parser) parseExpression(allowBinary, allowCast bool) ast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	if !allowBinary {
		return left
	}

	result := left
	for {
		tok := p.cur()
		switch {
		case isBinaryOp(tok.Kind):
			p.advance()
			rhs := p.parseUnary()
			if rhs == nil {
				return result
			}
			prec2 := precClass(tok.Kind)
			if topBin, ok := result.(*ast.BinaryOp); ok {
				prec1 := precClass(topBin.Op)
				if prec2 <= prec1 {
					result = &ast.BinaryOp{Token: tok, Op: tok.Kind, Left: result, Right: rhs}
				} else {
					topBin.Right = &ast.BinaryOp{Token: tok, Op: tok.Kind, Left: topBin.Right, Right: rhs}
				}
			} else {
				result = &ast.BinaryOp{Token: tok, Op: tok.Kind, Left: result, Right: rhs}
			}

		case tok.Kind == token.As && allowCast:
			p.advance()
			target := p.parseType()
			result = &ast.TypeCast{Token: tok, Expr: result, Target: target}

		case tok.Kind == token.Assign:
			p.advance()
			rhs := p.parseExpression(true, true)
			ref, ok := result.(*ast.VarRef)
			if !ok {
				p.diags.Error("MismatchedInstruction",
					"left-hand side of an assignment must be a variable", tok)
				return result
			}
			if v, found := p.env.Lookup(ref.Name); found {
				if v.IsConst {
					p.diags.Error("ConstantReassignment",
						"cannot assign to const variable "+ref.Name, tok)
				}
				if other, ok := rhs.(*ast.VarRef); ok && other.Name == ref.Name {
					p.diags.Warning("SelfAssignment", "assigning "+ref.Name+" to itself", tok)
				}
				v.Assigned = true
				v.LastAssignmentToken = tok
			}
			return &ast.Assign{Token: tok, Name: ref.Name, Value: rhs}

		default:
			return result
		}
	}
}

// parseUnary parses a single tightly-bound operand: an optional prefix
// `!`/`-` wrapping a primary, with no binary continuation of its own.
func (p *Parser) parseUnary() ast.Node {
	tok := p.cur()
	if tok.Kind == token.Not || tok.Kind == token.Minus {
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryOp{Token: tok, Op: tok.Kind, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.cur()
	switch tok.Kind {
	case token.String:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.String, StringVal: unquote(tok.Lexeme)}
	case token.Regex:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Iterable(types.String), RegexSource: unquote(tok.Lexeme)}
	case token.Int:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Int, IntVal: parseIntLiteral(tok.Lexeme)}
	case token.Float:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Float, FloatVal: parseFloatLiteral(tok.Lexeme)}
	case token.Bool:
		p.advance()
		return &ast.Literal{Token: tok, Type: types.Bool, BoolVal: tok.Lexeme == "true"}
	case token.LParen:
		p.advance()
		inner := p.parseExpression(true, true)
		p.expect(token.RParen)
		return &ast.Paren{Token: tok, Inner: inner}
	case token.LBrace:
		return p.parseBlock()
	case token.Input, token.Output, token.Print, token.Println:
		return p.parseBuiltinCall()
	case token.Ident:
		p.advance()
		if v, ok := p.env.Lookup(tok.Lexeme); ok {
			v.Read = true
		}
		if p.cur().Kind == token.LParen {
			return p.parseCallArgs(tok)
		}
		return &ast.VarRef{Token: tok, Name: tok.Lexeme}
	default:
		p.diags.Error("UnexpectedToken", "unexpected token "+string(tok.Kind)+" in expression", tok)
		return nil
	}
}

func (p *Parser) parseBuiltinCall() ast.Node {
	tok := p.advance()
	args := p.parseArgList()
	return &ast.BuiltinCall{Token: tok, Name: tok.Kind, Args: args}
}

func (p *Parser) parseCallArgs(nameTok token.Token) ast.Node {
	args := p.parseArgList()
	return &ast.FnCall{Token: nameTok, Name: nameTok.Lexeme, Args: args}
}

func (p *Parser) parseArgList() []ast.Node {
	p.expect(token.LParen)
	var args []ast.Node
	for p.cur().Kind != token.RParen && !p.atEOF() {
		arg := p.parseExpression(true, true)
		if arg != nil {
			args = append(args, arg)
		}
		if p.cur().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

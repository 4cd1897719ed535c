package parser

import (
	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/symtab"
	"github.com/tesc-lang/tesc/internal/token"
)

// parseForLoop parses `for (let|const)? IDENT : TYPE in EXPR STMT`. The
// head and body share a single scope, pushed before the head is parsed
// (spec.md §4.2 "For loop").
func (p *Parser) parseForLoop() ast.Node {
	tok := p.advance() // 'for'

	p.env.Push()
	defer p.env.Pop()

	var headNode ast.Node
	switch p.cur().Kind {
	case token.Let, token.Const:
		headNode = p.parseLetOrIterable()
	case token.Ident:
		// the let/const keyword may be omitted: `for IDENT : TYPE in EXPR`
		nameTok := p.advance()
		p.expect(token.Colon)
		declType := p.parseType()
		p.expect(token.In)
		source := p.parseExpression(true, true)
		p.env.Insert(&symtab.Variable{Name: nameTok.Lexeme, Type: declType,
			DeclarationToken: nameTok, IdentifierToken: nameTok, Assigned: true})
		headNode = &ast.IterableAssign{Token: nameTok, Name: nameTok.Lexeme, Type: declType, Source: source}
	default:
		p.diags.Error("UnexpectedToken", "expected 'let', 'const' or an identifier after 'for'", p.cur())
		return nil
	}
	head, ok := headNode.(*ast.IterableAssign)
	if !ok {
		if headNode != nil {
			p.diags.Error("MismatchedInstruction", "for-loop head must be an iterable assignment (use 'in')", headNode.Tok())
		}
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.ForLoop{Token: tok, Head: head, Body: body}
}

// parseConditional parses `if EXPR STMT (else STMT)?`.
func (p *Parser) parseConditional() ast.Node {
	tok := p.advance() // 'if'

	cond := p.parseExpression(true, false)
	if cond == nil {
		p.diags.Error("UnexpectedToken", "expected condition after 'if'", p.cur())
		return nil
	}

	if p.cur().Kind == token.Semicolon || p.cur().Kind == token.RBrace || p.atEOF() {
		p.diags.Error("UnexpectedToken", "missing 'if' body", p.cur())
		return nil
	}

	thenIsBlock := p.cur().Kind == token.LBrace
	then := p.parseStatement()
	if !thenIsBlock {
		p.diags.Warning("NoBlock", "'if' body is not a block", tok)
	}

	elseNode := ast.Node(&ast.NoneLiteral{Token: tok})
	elseIsBlock := true
	if p.cur().Kind == token.Else {
		p.advance()
		elseIsBlock = p.cur().Kind == token.LBrace
		elseNode = p.parseStatement()
		if !elseIsBlock {
			p.diags.Warning("NoBlock", "'else' body is not a block", tok)
		}
	}

	return &ast.Conditional{Token: tok, Cond: cond, Then: then, Else: elseNode, ThenBlock: thenIsBlock, ElseBlock: elseIsBlock}
}

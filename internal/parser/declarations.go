package parser

import (
	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/symtab"
	"github.com/tesc-lang/tesc/internal/token"
)

// parseTestDecl parses `NAME ( "command line" ) BLOCK`. The command
// string is consumed directly as a token rather than run through
// parseExpression, so it never triggers magic-literal or other
// expression-level warnings (spec.md §4.2 "Test declaration").
func (p *Parser) parseTestDecl() *ast.TestDecl {
	nameTok := p.advance()
	p.expect(token.LParen)

	cmdTok, ok := p.expect(token.String)
	command := ""
	if ok {
		command = unquote(cmdTok.Lexeme)
	}

	p.expect(token.RParen)

	if p.cur().Kind != token.LBrace {
		p.diags.Error("UnexpectedToken", "expected '{' to begin test body", p.cur())
		p.synchronize()
		return nil
	}

	p.env.Push()
	body := p.parseBlockStatements()
	p.env.Pop()

	return &ast.TestDecl{Token: nameTok, Name: nameTok.Lexeme, Command: command, Body: body}
}

// parseFnDecl parses `fn NAME ( (const? IDENT : TYPE),* ) : TYPE BLOCK`.
// Parameters and the body share one scope (spec.md §4.2 "Function
// declaration").
func (p *Parser) parseFnDecl() *ast.FnDecl {
	tok := p.advance() // 'fn'
	nameTok, _ := p.expect(token.Ident)
	p.expect(token.LParen)

	p.env.Push()
	defer p.env.Pop()

	var params []ast.Param
	for p.cur().Kind != token.RParen && !p.atEOF() {
		isConst := false
		if p.cur().Kind == token.Const {
			isConst = true
			p.advance()
		}
		pNameTok, _ := p.expect(token.Ident)
		p.expect(token.Colon)
		pType := p.parseType()
		params = append(params, ast.Param{Name: pNameTok.Lexeme, Type: pType, IsConst: isConst})
		p.env.Insert(&symtab.Variable{Name: pNameTok.Lexeme, Type: pType, IsConst: isConst,
			DeclarationToken: tok, IdentifierToken: pNameTok, Assigned: true})
		if p.cur().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)
	p.expect(token.Colon)
	returnType := p.parseType()

	body := p.parseBlockStatements()

	return &ast.FnDecl{Token: tok, Name: nameTok.Lexeme, Params: params, ReturnType: returnType, Body: body}
}

// parseBlockStatements parses `{ stmt* }` without pushing an additional
// scope of its own — used by test/fn declarations, which push one scope
// that covers both their declaration head and their body.
func (p *Parser) parseBlockStatements() *ast.Block {
	braceTok, _ := p.expect(token.LBrace)
	block := &ast.Block{Token: braceTok}
	for p.cur().Kind != token.RBrace && !p.atEOF() {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RBrace)
	return block
}

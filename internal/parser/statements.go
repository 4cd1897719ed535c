package parser

import (
	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/symtab"
	"github.com/tesc-lang/tesc/internal/token"
	"github.com/tesc-lang/tesc/internal/types"
)

// parseStatement parses one statement and consumes its terminator: a
// `;`, or an implicit terminator when the next token is `}` (spec.md
// §4.2 "Statement"). A statement that ends with a block's closing `}`
// (a block, a for-loop, an if/else) needs no terminator.
func (p *Parser) parseStatement() ast.Node {
	var node ast.Node
	switch p.cur().Kind {
	case token.Let, token.Const:
		node = p.parseLetOrIterable()
	case token.For:
		node = p.parseForLoop()
	case token.If:
		node = p.parseConditional()
	case token.LBrace:
		node = p.parseBlock()
	default:
		node = p.parseExpression(true, true)
	}

	if node == nil {
		p.synchronize()
		return nil
	}

	switch p.cur().Kind {
	case token.Semicolon:
		p.advance()
	case token.RBrace:
		// implicit terminator for the trailing statement in a block
	default:
		if p.peekAt(-1).Kind == token.RBrace {
			return node
		}
		p.diags.Error("UnexpectedToken", "expected ';' after statement", p.cur())
		p.synchronize()
	}
	return node
}

// parseBlock parses `{ stmt* }`, pushing and popping its own scope.
func (p *Parser) parseBlock() *ast.Block {
	tok, _ := p.expect(token.LBrace)
	p.env.Push()
	defer p.env.Pop()

	block := &ast.Block{Token: tok}
	for p.cur().Kind != token.RBrace && !p.atEOF() {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if len(block.Statements) == 0 {
		p.diags.Warning("EmptyBlock", "empty block", tok)
	}
	p.expect(token.RBrace)
	return block
}

// parseLetOrIterable parses `('let'|'const') IDENT ':' TYPE ('='|'in') expr`
// and returns either a *ast.LetDecl or a *ast.IterableAssign.
func (p *Parser) parseLetOrIterable() ast.Node {
	declTok := p.cur()
	isConst := declTok.Kind == token.Const
	p.advance()

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.synchronize()
		return nil
	}
	name := nameTok.Lexeme

	if _, ok := p.expect(token.Colon); !ok {
		p.env.Insert(&symtab.Variable{Name: name, Type: types.Any, IsConst: isConst,
			DeclarationToken: declTok, IdentifierToken: nameTok})
		p.diags.Error("VariableTypeAnnotation", "missing type annotation for "+name, nameTok)
		return nil
	}

	// missing type annotation is recoverable per spec.md §4.2
	if !isTypeToken(p.cur().Kind) {
		p.env.Insert(&symtab.Variable{Name: name, Type: types.Any, IsConst: isConst,
			DeclarationToken: declTok, IdentifierToken: nameTok})
		p.diags.Error("VariableTypeAnnotation", "missing type annotation for "+name, p.cur())
		return nil
	}
	declType := p.parseType()

	switch p.cur().Kind {
	case token.Assign:
		p.advance()
		value := p.parseExpression(true, true)
		p.env.Insert(&symtab.Variable{Name: name, Type: declType, IsConst: isConst,
			DeclarationToken: declTok, IdentifierToken: nameTok, Assigned: true})
		return &ast.LetDecl{Token: declTok, Name: name, Type: declType, IsConst: isConst, Value: value}
	case token.In:
		p.advance()
		source := p.parseExpression(true, true)
		p.env.Insert(&symtab.Variable{Name: name, Type: declType, IsConst: isConst,
			DeclarationToken: declTok, IdentifierToken: nameTok, Assigned: true})
		return &ast.IterableAssign{Token: declTok, Name: name, Type: declType, IsConst: isConst, Source: source}
	default:
		p.diags.Error("UnexpectedToken", "expected '=' or 'in'", p.cur())
		return nil
	}
}

// parseTopLevelConst parses `const_decl := 'const' IDENT ':' TYPE '=' expr ';'`.
func (p *Parser) parseTopLevelConst() *ast.LetDecl {
	node := p.parseLetOrIterable()
	decl, ok := node.(*ast.LetDecl)
	if !ok {
		if node != nil {
			p.diags.Error("MismatchedInstruction", "top-level const must use '='", node.Tok())
		}
		p.synchronize()
		return nil
	}
	if !decl.IsConst {
		p.diags.Error("GlobalScope", "only const declarations are allowed at global scope besides tests and fn", decl.Token)
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		p.synchronize()
	}
	return decl
}

func isTypeToken(k token.Kind) bool {
	switch k {
	case token.TypeString, token.TypeRegex, token.TypeInt, token.TypeFloat, token.TypeBool, token.TypeNone:
		return true
	}
	return false
}

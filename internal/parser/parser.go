// Package parser implements the tesc recursive-descent parser with a
// precedence-climbing expression mechanism (spec.md §4.2), producing a
// typed AST and a populated symtab.Env of scoped symbols.
package parser

import (
	"strconv"
	"strings"

	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/symtab"
	"github.com/tesc-lang/tesc/internal/token"
	"github.com/tesc-lang/tesc/internal/types"
)

// Parser holds parsing state over a fixed token slice.
type Parser struct {
	file   string
	tokens []token.Token
	pos    int
	diags  *diag.Collector
	env    *symtab.Env
}

// New creates a Parser over tokens, recording diagnostics into diags.
func New(file string, tokens []token.Token, diags *diag.Collector) *Parser {
	return &Parser{file: file, tokens: tokens, diags: diags, env: symtab.New()}
}

// Env exposes the parser's symbol table. After Parse returns only its
// global scope (top-level consts) and function table remain; the type
// checker builds its own Env for its second pass.
func (p *Parser) Env() *symtab.Env { return p.env }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.cur().Kind == kind {
		return p.advance(), true
	}
	p.diags.Error("MismatchedTokenType",
		"expected "+string(kind)+", got "+string(p.cur().Kind), p.cur())
	return p.cur(), false
}

// synchronize advances to the next statement boundary: a `;` or `}` at
// the depth the parser was at when the error occurred. A `{` suspends
// the skip (nested blocks are swallowed whole). spec.md §4.2.
func (p *Parser) synchronize() {
	depth := 0
	for !p.atEOF() {
		switch p.cur().Kind {
		case token.LBrace:
			depth++
			p.advance()
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
			p.advance()
		case token.Semicolon:
			p.advance()
			if depth == 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

// Parse parses the whole token stream into a Program. Parser errors and
// warnings are recorded in the Collector; this never aborts early (spec.md
// §4.2 "Error recovery").
func Parse(file string, tokens []token.Token, diags *diag.Collector) (*ast.Program, *symtab.Env) {
	p := New(file, tokens, diags)
	prog := &ast.Program{}

	for !p.atEOF() {
		switch {
		case p.cur().Kind == token.Ident && p.peekAt(1).Kind == token.LParen:
			if test := p.parseTestDecl(); test != nil {
				prog.Tests = append(prog.Tests, test)
			}
		case p.cur().Kind == token.Fn:
			if fn := p.parseFnDecl(); fn != nil {
				prog.Functions = append(prog.Functions, fn)
				p.env.DefineFunction(fn.Name, &symtab.Function{Decl: fn})
			}
		case p.cur().Kind == token.Const:
			if c := p.parseTopLevelConst(); c != nil {
				prog.Consts = append(prog.Consts, c)
			}
		default:
			p.diags.Error("GlobalScope",
				"only tests, fn declarations and const declarations are allowed at global scope", p.cur())
			p.synchronize()
		}
	}
	return prog, p.env
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return unescape(lexeme[1 : len(lexeme)-1])
	}
	return lexeme
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func parseIntLiteral(lexeme string) int64 {
	v, _ := strconv.ParseInt(lexeme, 10, 64)
	return v
}

func parseFloatLiteral(lexeme string) float64 {
	v, _ := strconv.ParseFloat(lexeme, 64)
	return v
}

// parseType consumes a single type-keyword token and returns its Type.
func (p *Parser) parseType() types.Type {
	tok := p.cur()
	switch tok.Kind {
	case token.TypeString:
		p.advance()
		return types.String
	case token.TypeRegex:
		p.advance()
		return types.Regex
	case token.TypeInt:
		p.advance()
		return types.Int
	case token.TypeFloat:
		p.advance()
		return types.Float
	case token.TypeBool:
		p.advance()
		return types.Bool
	case token.TypeNone:
		p.advance()
		return types.None
	default:
		p.diags.Error("MismatchedTokenType", "expected a type", tok)
		return types.Any
	}
}

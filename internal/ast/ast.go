// Package ast defines the tesc abstract syntax tree. Every node carries
// its originating token for diagnostics (spec.md §3, "AST instruction").
// Nodes are produced once by the parser and never rewritten; the type
// checker annotates diagnostics separately rather than mutating nodes.
package ast

import (
	"github.com/tesc-lang/tesc/internal/token"
	"github.com/tesc-lang/tesc/internal/types"
)

// Node is the common interface implemented by every AST instruction.
type Node interface {
	Tok() token.Token
}

// Program is the root of a parsed source file.
type Program struct {
	Tests     []*TestDecl
	Functions []*FnDecl
	Consts    []*LetDecl
}

// TestDecl is a top-level `NAME ( "command" ) { ... }` declaration.
type TestDecl struct {
	Token   token.Token
	Name    string
	Command string // unquoted command line
	Body    *Block
}

func (n *TestDecl) Tok() token.Token { return n.Token }

// Param is one `(const? IDENT : TYPE)` function parameter.
type Param struct {
	Name    string
	Type    types.Type
	IsConst bool
}

// FnDecl is a user-defined `fn NAME(params) : TYPE { ... }` declaration.
type FnDecl struct {
	Token      token.Token
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *Block
}

func (n *FnDecl) Tok() token.Token { return n.Token }

// Block is a `{ stmt; stmt; ... }` sequence; it introduces a scope.
type Block struct {
	Token      token.Token
	Statements []Node
}

func (n *Block) Tok() token.Token { return n.Token }

// Paren is a parenthesized expression, kept as its own node so
// precedence-climbing can treat it as an atomic primary.
type Paren struct {
	Token token.Token
	Inner Node
}

func (n *Paren) Tok() token.Token { return n.Token }

// Literal is a string/int/float/bool/regex literal. Regex literals cache
// their enumerated expansion lazily, on first evaluation (spec.md §4.4).
type Literal struct {
	Token       token.Token
	Type        types.Type
	StringVal   string
	IntVal      int64
	FloatVal    float64
	BoolVal     bool
	RegexSource string // raw pattern text, Type == Regex only

	regexExpanded bool
	regexCache    []string
}

func (n *Literal) Tok() token.Token { return n.Token }

// RegexCache returns the cached expansion and whether it has been computed.
func (n *Literal) RegexCache() ([]string, bool) { return n.regexCache, n.regexExpanded }

// SetRegexCache stores the expansion computed on first evaluation.
func (n *Literal) SetRegexCache(values []string) {
	n.regexCache = values
	n.regexExpanded = true
}

// NoneLiteral is the empty `None` instruction, used as the implicit
// value of an omitted else-branch.
type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) Tok() token.Token { return n.Token }

// BuiltinCall is a call to input/output/print/println.
type BuiltinCall struct {
	Token token.Token
	Name  token.Kind // token.Input | token.Output | token.Print | token.Println
	Args  []Node
}

func (n *BuiltinCall) Tok() token.Token { return n.Token }

// FnCall is a call to a user-defined function.
type FnCall struct {
	Token token.Token
	Name  string
	Args  []Node
}

func (n *FnCall) Tok() token.Token { return n.Token }

// VarRef is a bare identifier used as an expression.
type VarRef struct {
	Token token.Token
	Name  string
}

func (n *VarRef) Tok() token.Token { return n.Token }

// UnaryOp is a prefix `!` or `-` expression.
type UnaryOp struct {
	Token   token.Token
	Op      token.Kind
	Operand Node
}

func (n *UnaryOp) Tok() token.Token { return n.Token }

// BinaryOp is any infix arithmetic/relational/logical expression.
type BinaryOp struct {
	Token token.Token
	Op    token.Kind
	Left  Node
	Right Node
}

func (n *BinaryOp) Tok() token.Token { return n.Token }

// TypeCast is `expr as TYPE`.
type TypeCast struct {
	Token  token.Token
	Target types.Type
	Expr   Node
}

func (n *TypeCast) Tok() token.Token { return n.Token }

// LetDecl is `let|const IDENT : TYPE = EXPR`, or a bare declaration with
// a missing initializer recovered as Value == nil (parser error already
// recorded; the type checker types the missing value as none and keeps
// the declared type).
type LetDecl struct {
	Token   token.Token
	Name    string
	Type    types.Type
	IsConst bool
	Value   Node
}

func (n *LetDecl) Tok() token.Token { return n.Token }

// IterableAssign is `(let|const)? IDENT : TYPE in EXPR`, valid only as a
// for-loop head (the let/const keyword may be omitted there).
type IterableAssign struct {
	Token   token.Token
	Name    string
	Type    types.Type
	IsConst bool
	Source  Node
}

func (n *IterableAssign) Tok() token.Token { return n.Token }

// Assign is `IDENT = EXPR` to an existing, non-const variable.
type Assign struct {
	Token token.Token
	Name  string
	Value Node
}

func (n *Assign) Tok() token.Token { return n.Token }

// ForLoop is `for (let|const)? IDENT : TYPE in EXPR STMT`.
type ForLoop struct {
	Token token.Token
	Head  *IterableAssign
	Body  Node
}

func (n *ForLoop) Tok() token.Token { return n.Token }

// Conditional is `if EXPR STMT (else STMT)?`. Else is a NoneLiteral when
// the else-branch is omitted.
type Conditional struct {
	Token     token.Token
	Cond      Node
	Then      Node
	Else      Node
	ThenBlock bool // true if Then is a *Block (used for the "no block" warning)
	ElseBlock bool
}

func (n *Conditional) Tok() token.Token { return n.Token }

// Package check implements the tesc static type checker: a second pass
// over the AST produced by the parser, computing each node's Type and
// emitting TypeError diagnostics and style warnings (spec.md §4.3). The
// checker rebuilds its own scope stack as it walks declarations and
// blocks, independent of the parser's transient scopes, since those are
// popped by the time checking starts.
package check

import (
	"fmt"

	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/ops"
	"github.com/tesc-lang/tesc/internal/symtab"
	"github.com/tesc-lang/tesc/internal/types"
)

// Options configures warning suppression (spec.md §6 CLI flags).
type Options struct {
	DisableWarnings      bool
	DisableStyleWarnings bool
}

type checker struct {
	diags     *diag.Collector
	env       *symtab.Env
	functions map[string]*ast.FnDecl
	opts      Options
}

// Check runs the type checker over prog, recording diagnostics into
// diags. It never stops at the first error (spec.md §9 "Error
// aggregation").
func Check(prog *ast.Program, diags *diag.Collector, opts Options) {
	c := &checker{diags: diags, env: symtab.New(), functions: map[string]*ast.FnDecl{}, opts: opts}

	for _, fn := range prog.Functions {
		c.functions[fn.Name] = fn
	}

	for _, cst := range prog.Consts {
		c.checkLetDecl(cst, true)
	}

	for _, fn := range prog.Functions {
		c.env.Push()
		for _, p := range fn.Params {
			c.env.Insert(&symtab.Variable{Name: p.Name, Type: p.Type, IsConst: p.IsConst, Assigned: true})
		}
		bodyType := c.checkBlockStatements(fn.Body)
		if fn.ReturnType.Tag != types.NoneT && fn.ReturnType.Tag != types.AnyT {
			_ = bodyType // tesc has no explicit return statement; at run
			// time a call evaluates to the body's last statement value, but
			// the checker does not compare that statement's type with
			// ReturnType — matching spec.md's omission of a Return
			// instruction kind.
		}
		c.env.Pop()
	}

	for _, test := range prog.Tests {
		c.env.Push()
		c.checkBlockStatements(test.Body)
		c.env.Pop()
	}
}

func (c *checker) checkBlockStatements(b *ast.Block) types.Type {
	var last types.Type = types.None
	for _, stmt := range b.Statements {
		last = c.check(stmt, false)
	}
	return last
}

// check computes the type of node, emitting diagnostics as it goes.
// insideConst suppresses MagicLiteral warnings while checking the body
// of a const declaration (spec.md §4.3).
func (c *checker) check(node ast.Node, insideConst bool) types.Type {
	switch n := node.(type) {

	case *ast.Literal:
		return c.checkLiteral(n, insideConst)

	case *ast.NoneLiteral:
		return types.None

	case *ast.VarRef:
		if v, ok := c.env.Lookup(n.Name); ok {
			return v.Type
		}
		if _, ok := c.functions[n.Name]; ok {
			c.diags.Error("MismatchedInstruction", "function "+n.Name+" used outside a call", n.Token)
			return types.Any
		}
		c.diags.Error("IdentifierNotDefined", "undefined identifier "+n.Name, n.Token)
		return types.Any

	case *ast.Paren:
		return c.check(n.Inner, false)

	case *ast.UnaryOp:
		operand := c.check(n.Operand, false)
		op, ok := ops.Unary[n.Op]
		if !ok {
			c.diags.Error("UnexpectedToken", "unknown unary operator", n.Token)
			return types.Any
		}
		if operand.Tag != types.AnyT && !op.ValidOperand(operand) {
			c.diags.Error("MismatchedType", fmt.Sprintf("operator %s does not accept %s", n.Op, operand), n.Token)
			return types.Any
		}
		return op.Result(operand)

	case *ast.BinaryOp:
		left := c.check(n.Left, false)
		right := c.check(n.Right, false)
		op, ok := ops.Binary[n.Op]
		if !ok {
			c.diags.Error("UnexpectedToken", "unknown binary operator", n.Token)
			return types.Any
		}
		if left.Tag == types.AnyT || right.Tag == types.AnyT {
			return types.Any
		}
		result, ok := op.ResultType(left, right)
		if !ok {
			if op.ValidLeftTypes(left) {
				c.diags.Error("MismatchedType",
					fmt.Sprintf("operator %s does not accept right operand of type %s", n.Op, right), n.Right.Tok())
			} else {
				c.diags.Error("MismatchedType",
					fmt.Sprintf("operator %s does not accept left operand of type %s", n.Op, left), n.Left.Tok())
			}
			return types.Any
		}
		return result

	case *ast.TypeCast:
		from := c.check(n.Expr, false)
		if from.Tag != types.AnyT && !castAllowed(from, n.Target) {
			c.diags.Error("IllegalCast", fmt.Sprintf("cannot cast %s as %s", from, n.Target), n.Token)
		}
		return n.Target

	case *ast.BuiltinCall:
		return c.checkBuiltinCall(n)

	case *ast.FnCall:
		return c.checkFnCall(n)

	case *ast.LetDecl:
		return c.checkLetDecl(n, insideConst)

	case *ast.IterableAssign:
		return c.checkIterableAssign(n)

	case *ast.Assign:
		valType := c.check(n.Value, false)
		if v, ok := c.env.Lookup(n.Name); ok {
			if v.Type.Tag != types.AnyT && valType.Tag != types.AnyT && !types.Equal(v.Type, valType) {
				c.diags.Error("MismatchedType",
					fmt.Sprintf("cannot assign %s to variable %s of type %s", valType, n.Name, v.Type), n.Token)
			}
		} else {
			c.diags.Error("IdentifierNotDefined", "undefined identifier "+n.Name, n.Token)
		}
		return types.None

	case *ast.ForLoop:
		c.env.Push()
		c.checkIterableAssign(n.Head)
		c.check(n.Body, false)
		c.env.Pop()
		return types.None

	case *ast.Conditional:
		condType := c.check(n.Cond, false)
		if condType.Tag != types.AnyT && condType.Tag != types.BoolT {
			c.diags.Error("MismatchedType", fmt.Sprintf("if condition must be bool, got %s", condType), n.Cond.Tok())
		}
		c.check(n.Then, false)
		c.check(n.Else, false)
		return types.None

	case *ast.Block:
		c.env.Push()
		result := c.checkBlockStatements(n)
		c.env.Pop()
		return result

	default:
		return types.None
	}
}

func (c *checker) checkLiteral(n *ast.Literal, insideConst bool) types.Type {
	if !insideConst && !c.opts.DisableWarnings {
		switch n.Type.Tag {
		case types.IntT:
			if !whitelistedInts[n.IntVal] {
				c.diags.Warning("MagicLiteral", fmt.Sprintf("magic int literal %d", n.IntVal), n.Token)
			}
		case types.FloatT:
			if !whitelistedFloats[n.FloatVal] {
				c.diags.Warning("MagicLiteral", fmt.Sprintf("magic float literal %v", n.FloatVal), n.Token)
			}
		case types.BoolT:
			if !whitelistedBools[n.BoolVal] {
				c.diags.Warning("MagicLiteral", fmt.Sprintf("magic bool literal %v", n.BoolVal), n.Token)
			}
		}
	}
	return n.Type
}

func (c *checker) checkBuiltinCall(n *ast.BuiltinCall) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.check(a, false)
	}
	switch n.Name {
	case "print", "println":
		if len(n.Args) < 1 {
			c.diags.Error("MismatchedNumberOfArguments", n.Token.Lexeme+" requires at least one argument", n.Token)
		}
		for i, t := range argTypes {
			if t.Tag != types.AnyT && t.Tag != types.StringT {
				c.diags.Error("MismatchedType", fmt.Sprintf("%s argument %d must be string, got %s", n.Token.Lexeme, i, t), n.Args[i].Tok())
			}
		}
	case "input", "output":
		if len(n.Args) != 1 {
			c.diags.Error("MismatchedNumberOfArguments", fmt.Sprintf("%s requires exactly one argument", n.Token.Lexeme), n.Token)
		} else if argTypes[0].Tag != types.AnyT && argTypes[0].Tag != types.StringT {
			c.diags.Error("MismatchedType", fmt.Sprintf("%s argument must be string, got %s", n.Token.Lexeme, argTypes[0]), n.Args[0].Tok())
		}
	}
	return types.None
}

func (c *checker) checkFnCall(n *ast.FnCall) types.Type {
	fn, ok := c.functions[n.Name]
	if !ok {
		c.diags.Error("IdentifierNotDefined", "undefined function "+n.Name, n.Token)
		for _, a := range n.Args {
			c.check(a, false)
		}
		return types.Any
	}
	if len(n.Args) != len(fn.Params) {
		c.diags.Error("MismatchedNumberOfArguments",
			fmt.Sprintf("%s expects %d arguments, got %d", n.Name, len(fn.Params), len(n.Args)), n.Token)
	}
	for i, a := range n.Args {
		argType := c.check(a, false)
		if i < len(fn.Params) {
			paramType := fn.Params[i].Type
			if argType.Tag != types.AnyT && paramType.Tag != types.AnyT && !types.Equal(argType, paramType) {
				c.diags.Error("MismatchedType",
					fmt.Sprintf("%s argument %d: expected %s, got %s", n.Name, i, paramType, argType), a.Tok())
			}
		}
	}
	return fn.ReturnType
}

func (c *checker) checkLetDecl(n *ast.LetDecl, insideConst bool) types.Type {
	valType := c.check(n.Value, insideConst || n.IsConst)
	declType := n.Type
	if declType.Tag == types.AnyT {
		declType = valType
	} else if valType.Tag != types.AnyT && !types.Equal(declType, valType) {
		c.diags.Error("MismatchedType",
			fmt.Sprintf("cannot assign %s to %s of declared type %s", valType, n.Name, declType), n.Token)
	}
	c.env.Insert(&symtab.Variable{Name: n.Name, Type: declType, IsConst: n.IsConst,
		DeclarationToken: n.Token, Assigned: true})
	return types.None
}

func (c *checker) checkIterableAssign(n *ast.IterableAssign) types.Type {
	srcType := c.check(n.Source, false)
	declType := n.Type
	if srcType.Tag == types.IterableT {
		if declType.Tag != types.AnyT && !types.Equal(*srcType.Elem, declType) {
			c.diags.Error("MismatchedType",
				fmt.Sprintf("for-loop variable %s declared %s but iterates %s", n.Name, declType, *srcType.Elem), n.Token)
		} else if declType.Tag == types.AnyT {
			declType = *srcType.Elem
		}
	} else if srcType.Tag != types.AnyT {
		c.diags.Error("MismatchedType",
			fmt.Sprintf("iterable-assignment source must be an iterable, got %s", srcType), n.Token)
	}
	c.env.Insert(&symtab.Variable{Name: n.Name, Type: declType, IsConst: n.IsConst,
		DeclarationToken: n.Token, Assigned: true})
	return types.None
}

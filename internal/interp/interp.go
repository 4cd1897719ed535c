package interp

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/exitcode"
	"github.com/tesc-lang/tesc/internal/ops"
	"github.com/tesc-lang/tesc/internal/process"
	"github.com/tesc-lang/tesc/internal/regexenum"
	"github.com/tesc-lang/tesc/internal/token"
	"github.com/tesc-lang/tesc/internal/types"
	"github.com/tesc-lang/tesc/internal/value"
)

// RuntimeError is a non-assertion, non-process-failure evaluation error:
// a TypeCast failure or an integer DivisionByZero (spec.md §4.4).
type RuntimeError struct {
	Message string
	Tok     token.Token
}

func (e *RuntimeError) Error() string { return e.Message }

// Options configures one interpreter run.
type Options struct {
	MaxSize int  // regex enumeration bound, spec.md §4.5, default 3
	Debug   bool // --debug, traces harness I/O
	Timeout int  // read timeout in seconds, spec.md §4.6, default 5
}

// Interp evaluates a type-checked Program.
type Interp struct {
	out     io.Writer
	renderer *diag.Renderer
	opts    Options

	functions map[string]*ast.FnDecl
	consts    map[string]value.Value
	env       *Environment

	harness *process.Harness
}

// New builds an Interp writing print/println output to out and
// diagnostics via renderer.
func New(out io.Writer, renderer *diag.Renderer, opts Options) *Interp {
	if opts.MaxSize <= 0 {
		opts.MaxSize = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5
	}
	return &Interp{out: out, renderer: renderer, opts: opts, consts: map[string]value.Value{}}
}

// Run evaluates every top-level const, then runs every test in source
// order, spawning and tearing down one child process per test. It
// returns exitcode.OK iff every test passed; otherwise the most
// specific exitcode.Code observed (a spawn-classification code takes
// priority over the generic TestFailure, spec.md §6).
func (ip *Interp) Run(prog *ast.Program) exitcode.Code {
	ip.functions = map[string]*ast.FnDecl{}
	for _, fn := range prog.Functions {
		ip.functions[fn.Name] = fn
	}

	ip.env = NewEnvironment(ip.functions, ip.consts)
	for _, c := range prog.Consts {
		v, err := ip.eval(c.Value)
		if err != nil {
			ip.reportError(err)
			continue
		}
		ip.consts[c.Name] = v
	}

	result := exitcode.OK
	for _, test := range prog.Tests {
		code := ip.runTest(test)
		if code != exitcode.OK && (result == exitcode.OK || result == exitcode.TestFailure) {
			result = code
		}
	}
	return result
}

func (ip *Interp) runTest(test *ast.TestDecl) exitcode.Code {
	h, err := process.Spawn(test.Command, process.Options{
		Debug:   ip.opts.Debug,
		Timeout: secondsToDuration(ip.opts.Timeout),
		Tracer:  ip.renderer,
	})
	if err != nil {
		ip.reportTestFailure(test.Name, err)
		var spawnErr *process.SpawnError
		if errors.As(err, &spawnErr) {
			return spawnErr.Code
		}
		return exitcode.Unknown
	}
	ip.harness = h

	ip.env = NewEnvironment(ip.functions, ip.consts)
	passed := true
	for _, stmt := range test.Body.Statements {
		if _, err := ip.eval(stmt); err != nil {
			ip.reportTestFailure(test.Name, err)
			h.Kill()
			passed = false
			break
		}
	}

	if passed {
		if err := h.Terminate(); err != nil {
			ip.reportTestFailure(test.Name, err)
			passed = false
		}
	}
	ip.harness = nil
	if passed {
		return exitcode.OK
	}
	return exitcode.TestFailure
}

func (ip *Interp) reportTestFailure(name string, err error) {
	fmt.Fprintf(ip.out, "FAIL %s: %v\n", name, err)
}

func (ip *Interp) reportError(err error) {
	fmt.Fprintf(ip.out, "error: %v\n", err)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// eval evaluates node in the current frame/scope, returning its Value.
func (ip *Interp) eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {

	case *ast.Literal:
		return ip.evalLiteral(n)

	case *ast.NoneLiteral:
		return value.None(), nil

	case *ast.VarRef:
		if v, ok := ip.env.lookup(n.Name); ok {
			return v, nil
		}
		return value.None(), &RuntimeError{Message: "undefined identifier " + n.Name, Tok: n.Token}

	case *ast.Paren:
		return ip.eval(n.Inner)

	case *ast.UnaryOp:
		operand, err := ip.eval(n.Operand)
		if err != nil {
			return value.Value{}, err
		}
		op := ops.Unary[n.Op]
		return op.Eval(operand)

	case *ast.BinaryOp:
		return ip.evalBinary(n)

	case *ast.TypeCast:
		return ip.evalCast(n)

	case *ast.BuiltinCall:
		return ip.evalBuiltin(n)

	case *ast.FnCall:
		return ip.evalFnCall(n)

	case *ast.LetDecl:
		v, err := ip.eval(n.Value)
		if err != nil {
			return value.Value{}, err
		}
		ip.env.define(n.Name, v)
		return value.None(), nil

	case *ast.IterableAssign:
		// Only meaningful as a for-loop head; evalForLoop drives iteration
		// directly rather than calling eval on the head node itself.
		return value.None(), nil

	case *ast.Assign:
		v, err := ip.eval(n.Value)
		if err != nil {
			return value.Value{}, err
		}
		ip.env.assign(n.Name, v)
		return value.None(), nil

	case *ast.ForLoop:
		return ip.evalForLoop(n)

	case *ast.Conditional:
		cond, err := ip.eval(n.Cond)
		if err != nil {
			return value.Value{}, err
		}
		if cond.Bool {
			return ip.eval(n.Then)
		}
		return ip.eval(n.Else)

	case *ast.Block:
		ip.env.pushScope()
		defer ip.env.popScope()
		var last value.Value = value.None()
		for _, stmt := range n.Statements {
			v, err := ip.eval(stmt)
			if err != nil {
				return value.Value{}, err
			}
			last = v
		}
		return last, nil

	default:
		return value.None(), nil
	}
}

func (ip *Interp) evalLiteral(n *ast.Literal) (value.Value, error) {
	switch n.Type.Tag {
	case types.StringT:
		return value.Str(n.StringVal), nil
	case types.IntT:
		return value.Int(n.IntVal), nil
	case types.FloatT:
		return value.Float(n.FloatVal), nil
	case types.BoolT:
		return value.Bool(n.BoolVal), nil
	case types.IterableT:
		cached, ok := n.RegexCache()
		if !ok {
			expanded, err := regexenum.Enumerate(n.RegexSource, ip.opts.MaxSize)
			if err != nil {
				return value.Value{}, &RuntimeError{Message: "regex expansion failed: " + err.Error(), Tok: n.Token}
			}
			n.SetRegexCache(expanded)
			cached = expanded
		}
		elems := make([]value.Value, len(cached))
		for i, s := range cached {
			elems[i] = value.Str(s)
		}
		return value.RegexSeq(elems), nil
	default:
		return value.None(), nil
	}
}

func (ip *Interp) evalBinary(n *ast.BinaryOp) (value.Value, error) {
	// Both sides always evaluate, left then right; no short-circuit
	// (spec.md §4.4).
	left, err := ip.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := ip.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	op, ok := ops.Binary[n.Op]
	if !ok {
		return value.Value{}, &RuntimeError{Message: "unknown binary operator", Tok: n.Token}
	}
	result, err := op.Eval(left, right)
	if err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error(), Tok: n.Token}
	}
	return result, nil
}

func (ip *Interp) evalCast(n *ast.TypeCast) (value.Value, error) {
	v, err := ip.eval(n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Target.Tag {
	case types.StringT:
		return value.Str(v.String()), nil
	case types.IntT:
		switch v.Type.Tag {
		case types.StringT:
			i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
			if err != nil {
				return value.Value{}, &RuntimeError{Message: fmt.Sprintf("TypeCast: cannot parse %q as int", v.Str), Tok: n.Token}
			}
			return value.Int(i), nil
		case types.FloatT:
			return value.Int(int64(v.Float)), nil // truncates toward zero
		case types.BoolT:
			if v.Bool {
				return value.Int(1), nil
			}
			return value.Int(0), nil
		}
	case types.FloatT:
		switch v.Type.Tag {
		case types.StringT:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if err != nil {
				return value.Value{}, &RuntimeError{Message: fmt.Sprintf("TypeCast: cannot parse %q as float", v.Str), Tok: n.Token}
			}
			return value.Float(f), nil
		case types.IntT:
			return value.Float(float64(v.Int)), nil
		case types.BoolT:
			if v.Bool {
				return value.Float(1), nil
			}
			return value.Float(0), nil
		}
	case types.BoolT:
		switch v.Type.Tag {
		case types.StringT:
			switch strings.TrimSpace(v.Str) {
			case "true":
				return value.Bool(true), nil
			case "false":
				return value.Bool(false), nil
			}
			return value.Value{}, &RuntimeError{Message: fmt.Sprintf("TypeCast: cannot parse %q as bool", v.Str), Tok: n.Token}
		case types.IntT:
			return value.Bool(v.Int != 0), nil
		case types.FloatT:
			return value.Bool(v.Float != 0), nil
		}
	}
	return value.Value{}, &RuntimeError{Message: "unsupported cast", Tok: n.Token}
}

func (ip *Interp) evalBuiltin(n *ast.BuiltinCall) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ip.eval(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	switch n.Name {
	case token.Print, token.Println:
		// Every argument, including the last, gets a trailing space
		// (spec.md §9 / original_source's args_to_string), so a single
		// print(c) call in a loop still separates successive calls.
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.Str)
			b.WriteByte(' ')
		}
		if n.Name == token.Println {
			b.WriteByte('\n')
		}
		fmt.Fprint(ip.out, b.String())
		return value.None(), nil

	case token.Input:
		if ip.harness == nil {
			return value.Value{}, &RuntimeError{Message: "input() called outside a test's process context", Tok: n.Token}
		}
		if err := ip.harness.Send(args[0].Str); err != nil {
			return value.Value{}, err
		}
		return value.None(), nil

	case token.Output:
		if ip.harness == nil {
			return value.Value{}, &RuntimeError{Message: "output() called outside a test's process context", Tok: n.Token}
		}
		if err := ip.harness.ReadLine(args[0].Str); err != nil {
			return value.Value{}, err
		}
		return value.None(), nil
	}
	return value.None(), nil
}

func (ip *Interp) evalFnCall(n *ast.FnCall) (value.Value, error) {
	fn, ok := ip.functions[n.Name]
	if !ok {
		return value.Value{}, &RuntimeError{Message: "undefined function " + n.Name, Tok: n.Token}
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ip.eval(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	ip.env.pushFrame()
	defer ip.env.popFrame()
	ip.env.pushScope()
	defer ip.env.popScope()
	for i, p := range fn.Params {
		ip.env.define(p.Name, args[i])
	}

	var last value.Value = value.None()
	for _, stmt := range fn.Body.Statements {
		v, err := ip.eval(stmt)
		if err != nil {
			return value.Value{}, err
		}
		last = v
	}
	return last, nil
}

func (ip *Interp) evalForLoop(n *ast.ForLoop) (value.Value, error) {
	seq, err := ip.eval(n.Head.Source)
	if err != nil {
		return value.Value{}, err
	}
	ip.env.pushScope()
	defer ip.env.popScope()

	for _, elem := range seq.Regex {
		ip.env.define(n.Head.Name, elem)
		if _, err := ip.eval(n.Body); err != nil {
			return value.Value{}, err
		}
	}
	return value.None(), nil
}

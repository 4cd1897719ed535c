package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/ast"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Collector) {
	t.Helper()
	toks, err := lexer.Tokenize("t.tesc", src)
	assert.NoError(t, err)
	diags := diag.NewCollector()
	prog, _ := Parse("t.tesc", toks, diags)
	return prog, diags
}

func TestParse_TestDecl(t *testing.T) {
	prog, diags := parse(t, `mytest("cat") { output("hi"); }`)
	assert.False(t, diags.HasErrors())
	assert.Len(t, prog.Tests, 1)
	assert.Equal(t, "mytest", prog.Tests[0].Name)
	assert.Equal(t, "cat", prog.Tests[0].Command)
	assert.Len(t, prog.Tests[0].Body.Statements, 1)
}

func TestParse_FnDecl(t *testing.T) {
	prog, diags := parse(t, `fn add(a: int, const b: int) : int { a + b; }`)
	assert.False(t, diags.HasErrors())
	assert.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.False(t, fn.Params[0].IsConst)
	assert.True(t, fn.Params[1].IsConst)
}

func TestParse_TopLevelConst(t *testing.T) {
	prog, diags := parse(t, `const pi: float = 3.0;`)
	assert.False(t, diags.HasErrors())
	assert.Len(t, prog.Consts, 1)
	assert.True(t, prog.Consts[0].IsConst)
}

func TestParse_PrecedenceLeftAssociative(t *testing.T) {
	prog, diags := parse(t, `t("c") { 1 + 2 * 3 - 4; }`)
	assert.False(t, diags.HasErrors())
	stmt := prog.Tests[0].Body.Statements[0]
	// (1 + (2 * 3)) - 4
	top, ok := stmt.(*ast.BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "-", string(top.Op))
	left, ok := top.Left.(*ast.BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "+", string(left.Op))
	_, ok = left.Right.(*ast.BinaryOp)
	assert.True(t, ok)
}

func TestParse_PrecedenceRotation(t *testing.T) {
	prog, diags := parse(t, `t("c") { 1 * 2 + 3 * 4; }`)
	assert.False(t, diags.HasErrors())
	stmt := prog.Tests[0].Body.Statements[0]
	// (1 * 2) + (3 * 4): '+' is lower precedence so it becomes the root
	top, ok := stmt.(*ast.BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "+", string(top.Op))
}

func TestParse_GlobalScopeErrorRecovers(t *testing.T) {
	prog, diags := parse(t, `1 + 1; mytest("cat") { output("hi"); }`)
	assert.True(t, diags.HasErrors())
	assert.Len(t, prog.Tests, 1)
}

func TestParse_MissingTypeAnnotationRecovers(t *testing.T) {
	prog, diags := parse(t, `t("c") { let x = 1; }`)
	assert.True(t, diags.HasErrors())
	assert.NotNil(t, prog.Tests)
}

func TestParse_ConstReassignmentErrors(t *testing.T) {
	_, diags := parse(t, `t("c") { const x: int = 1; x = 2; }`)
	assert.True(t, diags.HasErrors())
}

func TestParse_SelfAssignmentWarns(t *testing.T) {
	_, diags := parse(t, `t("c") { let x: int = 1; x = x; }`)
	var found bool
	for _, d := range diags.All() {
		if d.Category == "SelfAssignment" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_ConditionalNoBlockWarns(t *testing.T) {
	_, diags := parse(t, `t("c") { if true print("x"); }`)
	var found bool
	for _, d := range diags.All() {
		if d.Category == "NoBlock" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_ForLoopHead(t *testing.T) {
	prog, diags := parse(t, "t(\"c\") { for c: string in `a` { print(c); } }")
	assert.False(t, diags.HasErrors())
	stmt := prog.Tests[0].Body.Statements[0]
	loop, ok := stmt.(*ast.ForLoop)
	assert.True(t, ok)
	assert.Equal(t, "c", loop.Head.Name)
}

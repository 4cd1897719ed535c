package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/check"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/exitcode"
	"github.com/tesc-lang/tesc/internal/lexer"
	"github.com/tesc-lang/tesc/internal/parser"
)

// run lexes, parses, type-checks and interprets src, failing the test if
// the source doesn't compile cleanly.
func run(t *testing.T, src string, opts Options) (string, exitcode.Code) {
	t.Helper()
	toks, err := lexer.Tokenize("t.tesc", src)
	assert.NoError(t, err)
	diags := diag.NewCollector()
	prog, _ := parser.Parse("t.tesc", toks, diags)
	check.Check(prog, diags, check.Options{})
	assert.False(t, diags.HasErrors(), "unexpected compile errors: %+v", diags.All())

	var out bytes.Buffer
	renderer := diag.NewRenderer(&out)
	ip := New(&out, renderer, opts)
	code := ip.Run(prog)
	return out.String(), code
}

func TestRun_PrintWritesToOutput(t *testing.T) {
	out, code := run(t, `t("true") { print("hello"); }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Contains(t, out, "hello")
}

func TestRun_PrintlnAppendsNewline(t *testing.T) {
	out, _ := run(t, `t("true") { println("hi"); }`, Options{})
	assert.Equal(t, "hi \n", out)
}

func TestRun_ArithmeticPrecedence(t *testing.T) {
	out, code := run(t, `t("true") { println((1 + 2 * 3) as string); }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "7 \n", out)
}

func TestRun_IntDivisionByZeroFails(t *testing.T) {
	_, code := run(t, `t("true") { let x: int = 1 / 0; }`, Options{})
	assert.Equal(t, exitcode.TestFailure, code)
}

func TestRun_InvalidCastFails(t *testing.T) {
	_, code := run(t, `t("true") { let n: int = "12x" as int; }`, Options{})
	assert.Equal(t, exitcode.TestFailure, code)
}

func TestRun_CastIntToString(t *testing.T) {
	out, code := run(t, `t("true") { println(5 as string); }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "5 \n", out)
}

func TestRun_BoolCastRoundtrip(t *testing.T) {
	out, code := run(t, `t("true") { println("true" as bool as string); }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "true \n", out)
}

func TestRun_ForLoopOverRegex(t *testing.T) {
	out, code := run(t, "t(\"true\") { for c: string in `[ab]` { print(c); } }", Options{MaxSize: 3})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "a b ", out)
}

func TestRun_FunctionCallIsolatesFrame(t *testing.T) {
	out, code := run(t, `
fn add(a: int, b: int) : int { a + b; }
t("true") { println(add(2, 3) as string); }
`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "5 \n", out)
}

func TestRun_ConstIsVisibleInsideTest(t *testing.T) {
	out, code := run(t, `
const greeting: string = "hi";
t("true") { println(greeting); }
`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "hi \n", out)
}

func TestRun_InputOutputRoundtrip(t *testing.T) {
	out, code := run(t, `t("cat") { input("echo"); output("echo"); }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Empty(t, out)
}

func TestRun_OutputMismatchFails(t *testing.T) {
	_, code := run(t, `t("cat") { input("echo"); output("nope"); }`, Options{})
	assert.Equal(t, exitcode.TestFailure, code)
}

func TestRun_SpawnMissingCommandReportsProcessNotFound(t *testing.T) {
	_, code := run(t, `t("this-command-does-not-exist-anywhere") { print("x"); }`, Options{})
	assert.Equal(t, exitcode.ProcessNotFound, code)
}

func TestRun_ConditionalBranches(t *testing.T) {
	out, code := run(t, `t("true") { if 1 == 1 { print("yes"); } else { print("no"); } }`, Options{})
	assert.Equal(t, exitcode.OK, code)
	assert.Equal(t, "yes ", out)
}

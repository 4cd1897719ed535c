package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/exitcode"
)

func TestExecute_WrongExtensionExits(t *testing.T) {
	code := Execute([]string{"root.go"})
	assert.Equal(t, exitcode.FileExtensionNotTesc, code)
}

func TestExecute_MissingFileExits(t *testing.T) {
	code := Execute([]string{"/nonexistent/file.tesc"})
	assert.Equal(t, exitcode.SourceFileNotFound, code)
}

func TestExecute_MagicLiteralFixturePasses(t *testing.T) {
	code := Execute([]string{"../../../testdata/magic.tesc"})
	assert.Equal(t, exitcode.OK, code)
}

func TestExecute_MagicLiteralFixtureWithWarningsDisabled(t *testing.T) {
	code := Execute([]string{"-W", "../../../testdata/magic.tesc"})
	assert.Equal(t, exitcode.OK, code)
}

func TestExecute_RegexFixturePasses(t *testing.T) {
	code := Execute([]string{"../../../testdata/regex.tesc"})
	assert.Equal(t, exitcode.OK, code)
}

func TestExecute_PrecedenceFixturePasses(t *testing.T) {
	code := Execute([]string{"../../../testdata/precedence.tesc"})
	assert.Equal(t, exitcode.OK, code)
}

func TestExecute_InvalidCastFixtureFails(t *testing.T) {
	code := Execute([]string{"../../../testdata/cast.tesc"})
	assert.Equal(t, exitcode.TestFailure, code)
}

func TestExecute_EchoFixtureTimesOut(t *testing.T) {
	code := Execute([]string{"--timeout", "200ms", "../../../testdata/echo.tesc"})
	assert.Equal(t, exitcode.TestFailure, code)
}

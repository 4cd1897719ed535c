package diag

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/token"
)

func TestCollector_ErrorAndWarning(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())
	c.Warning("NoBlock", "missing block", token.Token{})
	assert.False(t, c.HasErrors())
	c.Error("MismatchedType", "bad type", token.Token{})
	assert.True(t, c.HasErrors())
	assert.Len(t, c.All(), 2)
}

func TestRenderer_FormatsLocationAndCaret(t *testing.T) {
	var buf bytes.Buffer
	color.NoColor = true
	r := NewRenderer(&buf)
	r.Render(Diagnostic{
		Severity: SeverityError,
		Category: "MismatchedType",
		Message:  "expected int",
		Tok:      token.Token{File: "t.tesc", Row: 2, Col: 5, Line: "let x: int = y;"},
	})
	out := buf.String()
	assert.Contains(t, out, "error: expected int [MismatchedType]")
	assert.Contains(t, out, "t.tesc:2:5")
	assert.Contains(t, out, "let x: int = y;")
	assert.Contains(t, out, "\n      ^\n")
}

func TestRenderer_Trace(t *testing.T) {
	var buf bytes.Buffer
	color.NoColor = true
	r := NewRenderer(&buf)
	r.Trace("sending: %s", "hello")
	assert.Contains(t, buf.String(), "sending: hello")
}

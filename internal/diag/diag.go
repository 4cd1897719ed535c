// Package diag collects and renders tesc diagnostics: lexical, parser and
// type-checker errors/warnings, plus runtime failures. A single Collector
// is passed by reference through parsing and type-checking so multiple
// diagnostics can surface from one run (spec.md §4.2 "Error recovery",
// §9 "Error aggregation").
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tesc-lang/tesc/internal/token"
)

// Severity classifies a diagnostic for rendering and exit-code purposes.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Diagnostic is one located message.
type Diagnostic struct {
	Severity Severity
	Category string // e.g. "MismatchedType", "MagicLiteral"
	Message  string
	Tok      token.Token
}

// Collector accumulates diagnostics for one source file's compile pass.
type Collector struct {
	diags []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Error records an error-severity diagnostic.
func (c *Collector) Error(category, message string, tok token.Token) {
	c.diags = append(c.diags, Diagnostic{Severity: SeverityError, Category: category, Message: message, Tok: tok})
}

// Warning records a warning-severity diagnostic.
func (c *Collector) Warning(category, message string, tok token.Token) {
	c.diags = append(c.diags, Diagnostic{Severity: SeverityWarning, Category: category, Message: message, Tok: tok})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in emission order.
func (c *Collector) All() []Diagnostic { return c.diags }

// Renderer prints diagnostics using spec.md §7's format:
//
//	<level>: <message> [<category>]
//	  <file>:<row>:<col>
//	  <source line>
//	  <caret under token>
//
// Colour is provided by github.com/fatih/color, which auto-disables
// itself (via mattn/go-isatty) when the process's stdout isn't a
// terminal.
type Renderer struct {
	out         io.Writer
	errColor    *color.Color
	warnColor   *color.Color
	infoColor   *color.Color
}

// NewRenderer builds a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		out:       w,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		infoColor: color.New(color.FgCyan),
	}
}

// Render prints one diagnostic.
func (r *Renderer) Render(d Diagnostic) {
	level := "error"
	c := r.errColor
	switch d.Severity {
	case SeverityWarning:
		level, c = "warning", r.warnColor
	case SeverityInfo:
		level, c = "info", r.infoColor
	}

	c.Fprintf(r.out, "%s", level)
	fmt.Fprintf(r.out, ": %s [%s]\n", d.Message, d.Category)
	fmt.Fprintf(r.out, "  %s:%d:%d\n", d.Tok.File, d.Tok.Row, d.Tok.Col)
	if d.Tok.Line != "" {
		fmt.Fprintf(r.out, "  %s\n", d.Tok.Line)
		fmt.Fprintf(r.out, "  %s%s\n", strings.Repeat(" ", max(d.Tok.Col-1, 0)), "^")
	}
}

// RenderAll prints every diagnostic in d in emission order.
func (r *Renderer) RenderAll(ds []Diagnostic) {
	for _, d := range ds {
		r.Render(d)
	}
}

// Trace prints a cyan --debug trace line (process harness sends/reads).
func (r *Renderer) Trace(format string, args ...any) {
	r.infoColor.Fprintf(r.out, format+"\n", args...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

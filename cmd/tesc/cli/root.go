// Package cli wires tesc's cobra-based command-line surface (spec.md
// §6) to the lex/parse/check/interpret pipeline. Grounded on the
// teacher's main/main.go entry point, restructured around cobra since
// the flag surface (-W/-S/-m/--debug/--timeout) outgrows hand-rolled
// os.Args parsing.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tesc-lang/tesc/internal/check"
	"github.com/tesc-lang/tesc/internal/diag"
	"github.com/tesc-lang/tesc/internal/exitcode"
	"github.com/tesc-lang/tesc/internal/interp"
	"github.com/tesc-lang/tesc/internal/lexer"
	"github.com/tesc-lang/tesc/internal/parser"
	"github.com/tesc-lang/tesc/internal/source"
)

type flags struct {
	disableWarnings      bool
	disableStyleWarnings bool
	maxSize              int
	debug                bool
	timeout              time.Duration
}

// Execute builds and runs the root command over args, returning the
// process exit code to use (spec.md §6's taxonomy).
func Execute(args []string) exitcode.Code {
	code := exitcode.OK
	f := &flags{}

	root := &cobra.Command{
		Use:   "tesc <file>",
		Short: "Run a tesc black-box test specification against an external program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			code = run(positional[0], f)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVarP(&f.disableWarnings, "disable-warnings", "W", false, "disable all style and type-checker warnings")
	root.Flags().BoolVarP(&f.disableStyleWarnings, "disable-style-warnings", "S", false, "disable style warnings only")
	root.Flags().IntVarP(&f.maxSize, "max-size", "m", 3, "upper bound on regex repetition expansion")
	root.Flags().BoolVar(&f.debug, "debug", false, "trace child-process input/output")
	root.Flags().DurationVar(&f.timeout, "timeout", 5*time.Second, "per-read timeout on the child process, rounded up to whole seconds")

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitcode.Unknown
	}
	return code
}

func run(path string, f *flags) exitcode.Code {
	src, err := source.Read(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var srcErr *source.Error
		if errors.As(err, &srcErr) {
			return srcErr.Code
		}
		return exitcode.Unknown
	}

	renderer := diag.NewRenderer(os.Stdout)

	tokens, lexErr := lexer.Tokenize(path, src)
	if lexErr != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error")
		fmt.Fprintf(os.Stderr, ": %v\n", lexErr)
		return exitcode.Unknown
	}

	diags := diag.NewCollector()
	prog, _ := parser.Parse(path, tokens, diags)

	check.Check(prog, diags, check.Options{
		DisableWarnings:      f.disableWarnings,
		DisableStyleWarnings: f.disableStyleWarnings,
	})

	renderer.RenderAll(filterDiags(diags.All(), f))
	if diags.HasErrors() {
		return exitcode.Unknown
	}

	ip := interp.New(os.Stdout, renderer, interp.Options{
		MaxSize: f.maxSize,
		Debug:   f.debug,
		Timeout: int((f.timeout + time.Second - 1) / time.Second),
	})

	return ip.Run(prog)
}

// styleWarningCategories are the parser's formatting-only warnings
// (spec.md §4.2): NoBlock, SelfAssignment, EmptyBlock. MagicLiteral is a
// type-checker warning, not a style warning, and survives -S (spec.md
// §8 example C: "without --disable-style-warnings emits exactly one
// MagicLiteral warning" implies -S alone does not suppress it).
var styleWarningCategories = map[string]bool{
	"NoBlock":        true,
	"SelfAssignment": true,
	"EmptyBlock":     true,
}

// filterDiags drops warnings per -W/-S (errors are never suppressed).
func filterDiags(all []diag.Diagnostic, f *flags) []diag.Diagnostic {
	if !f.disableWarnings && !f.disableStyleWarnings {
		return all
	}
	var kept []diag.Diagnostic
	for _, d := range all {
		if d.Severity == diag.SeverityError {
			kept = append(kept, d)
			continue
		}
		if f.disableWarnings {
			continue
		}
		if f.disableStyleWarnings && styleWarningCategories[d.Category] {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

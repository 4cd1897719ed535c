// Command tesc runs a .tesc test-specification file against the
// external program(s) it declares, asserting their stdin/stdout
// behaviour (spec.md §6).
package main

import (
	"os"

	"github.com/tesc-lang/tesc/cmd/tesc/cli"
)

func main() {
	os.Exit(int(cli.Execute(os.Args[1:])))
}

/*
PURPOSE:
  Entry point for matbench.
  Initializes the CLI root command and executes it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o matbench ./cmd/matbench
  ./matbench run --sizes "64 128 256" --runs 3
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/matbench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main is the entry point for the wlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/wlog/cmd/wlog/commands"
	"github.com/thoreinstein/wlog/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.Suggest(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(errors.ExitCode(err))
	}
}

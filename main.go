// Package main is the entry point for the autoprim command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/Norgate-AV/autoprim/cmd"
	"github.com/Norgate-AV/autoprim/internal/errorlevel"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if !errorlevel.Silent(err) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}

		os.Exit(errorlevel.ExitCode(err))
	}
}

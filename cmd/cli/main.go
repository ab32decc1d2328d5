// Package main is the entry point for the expenditure-decile CLI.
package main

import (
	"os"

	"expenditure-decile/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
